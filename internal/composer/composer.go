package composer

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"time"

	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	DateLayout = "02.01.2006"
	TitleKey   = "title"
)

var dateKeys = map[string]bool{
	"start_date": true,
	"end_date":   true,
}

type Composer struct {
	config   *types.Config
	newTitle func() string
}

func New(config *types.Config) *Composer {
	return &Composer{
		config:   config,
		newTitle: NewReportTitle,
	}
}

// WithTitleGenerator replaces the report title source, mainly for tests.
func (c *Composer) WithTitleGenerator(gen func() string) *Composer {
	c.newTitle = gen
	return c
}

func NewReportTitle() string {
	return fmt.Sprintf("ID%d", 1000000+rand.IntN(9000000))
}

// ValidateDate accepts only dd.mm.yyyy and returns the value unchanged.
func ValidateDate(value string) (string, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", types.ErrInvalidDate, value)
	}
	return parsed.Format(DateLayout), nil
}

func (c *Composer) Compose(kind types.ReportKind, requestKind types.RequestKind, fields, params map[string]string) (*types.Request, error) {
	if _, ok := kind.Page(); !ok {
		return nil, fmt.Errorf("%w: unknown report kind %q", types.ErrCantGetData, kind)
	}

	report, ok := c.config.Reports[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no template for report %q", types.ErrCantGetData, kind)
	}

	template, ok := report.Requests[requestKind]
	if !ok {
		return nil, fmt.Errorf("%w: no %s template for report %q", types.ErrCantGetData, requestKind, kind)
	}

	data := cloneFields(template.Data)
	query := cloneFields(template.Params)

	if err := applyOverrides(data, fields); err != nil {
		return nil, err
	}
	if err := applyOverrides(query, params); err != nil {
		return nil, err
	}

	if endpoint, ok := c.config.Search.Endpoints[kind]; ok && endpoint.UUID != "" {
		if _, set := query["uuid"]; !set {
			query["uuid"] = types.FieldTemplate{Name: "uuid", Value: endpoint.UUID}
		}
	}

	title := ""
	if requestKind == types.RequestCreate && !kind.IsSearch() {
		title = c.newTitle()
		field := data[TitleKey]
		if field.Name == "" {
			field.Name = TitleKey
		}
		field.Value = title
		data[TitleKey] = field
	}

	url := c.resolveURL(kind, requestKind, template)
	if url == "" {
		return nil, fmt.Errorf("%w: empty url for %s of report %q", types.ErrCantGetData, requestKind, kind)
	}

	return types.NewRequest(url, c.config.Headers, fold(query), fold(data), c.config.CRM.Verify, title), nil
}

// SearchOptions builds the locate-loop descriptor for a report created under title.
func (c *Composer) SearchOptions(kind types.ReportKind, title string) (types.SearchDescriptor, error) {
	report, ok := c.config.Reports[kind]
	if !ok {
		return types.SearchDescriptor{}, fmt.Errorf("%w: no template for report %q", types.ErrCantGetData, kind)
	}

	return types.SearchDescriptor{
		Name:        title,
		Delay:       report.DelayAttempts,
		MaxAttempts: report.MaxAttempts,
		UUID:        report.UUID,
	}, nil
}

func (c *Composer) resolveURL(kind types.ReportKind, requestKind types.RequestKind, template types.RequestTemplate) string {
	if template.URL != "" {
		return template.URL
	}
	if kind.IsSearch() {
		if endpoint, ok := c.config.Search.Endpoints[kind]; ok && endpoint.URL != "" {
			return endpoint.URL
		}
	}
	return c.config.CRM.URLs[requestKind]
}

func applyOverrides(fields map[string]types.FieldTemplate, overrides map[string]string) error {
	for key, value := range overrides {
		field, exists := fields[key]
		if !exists {
			field = types.FieldTemplate{Name: key}
		}

		if field.Date || dateKeys[key] {
			valid, err := ValidateDate(value)
			if err != nil {
				return err
			}
			value = valid
		}

		field.Value = value
		fields[key] = field
	}
	return nil
}

func cloneFields(fields map[string]types.FieldTemplate) map[string]types.FieldTemplate {
	if fields == nil {
		return map[string]types.FieldTemplate{}
	}
	return maps.Clone(fields)
}

func fold(fields map[string]types.FieldTemplate) map[string]string {
	out := make(map[string]string, len(fields))
	for key, field := range fields {
		name := field.Name
		if name == "" {
			name = key
		}
		out[name] = field.Value
	}
	return out
}
