package types

import (
	"maps"
	"net/url"
	"sort"
)

// Request is a ready-to-send CRM request. It is built by the composer and
// never mutated afterwards; accessors hand out copies.
type Request struct {
	url     string
	headers map[string]string
	params  map[string]string
	data    map[string]string
	verify  bool
	title   string
}

func NewRequest(rawURL string, headers, params, data map[string]string, verify bool, title string) *Request {
	return &Request{
		url:     rawURL,
		headers: maps.Clone(nonNil(headers)),
		params:  maps.Clone(nonNil(params)),
		data:    maps.Clone(nonNil(data)),
		verify:  verify,
		title:   title,
	}
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func (r *Request) URL() string                { return r.url }
func (r *Request) Verify() bool               { return r.verify }
func (r *Request) Title() string              { return r.title }
func (r *Request) Headers() map[string]string { return maps.Clone(r.headers) }
func (r *Request) Params() map[string]string  { return maps.Clone(r.params) }
func (r *Request) Data() map[string]string    { return maps.Clone(r.data) }

func (r *Request) Query() url.Values {
	return toValues(r.params)
}

func (r *Request) Form() url.Values {
	return toValues(r.data)
}

func (r *Request) String() string {
	u := r.url
	if len(r.params) > 0 {
		u += "?" + r.Query().Encode()
	}
	return u
}

func toValues(m map[string]string) url.Values {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, m[k])
	}
	return values
}
