package parser

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

// ReportList returns the uuids of every entry titled name. A nil result
// means the report is not generated yet.
func ReportList(body, name string) ([]string, error) {
	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	matches := doc.Find("[title]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		title, _ := s.Attr("title")
		return title == name
	})

	var uuids []string
	for i := range matches.Nodes {
		href, _ := matches.Eq(i).Attr("href")
		uuid, err := uuidFromHref(href)
		if err != nil {
			return nil, fmt.Errorf("report %q: %w", name, err)
		}
		uuids = append(uuids, uuid)
	}
	return uuids, nil
}
