package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	searchTableID = "advSearchTab.searchResults"

	labelSearchNumber      = "Номер обращения"
	labelSearchSource      = "Источник обращения"
	labelSearchType        = "Тип обращения"
	labelSearchStatus      = "Статус"
	labelSearchResponsible = "Ответственный"
	labelSearchDescription = "Описание"
	labelSearchContact     = "Контактное лицо"
)

// SearchResults reads one page of the advanced search. A page without the
// results table means nothing matched.
func SearchResults(body string) ([]types.SearchResultRow, error) {
	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table" + byID(searchTableID)).First()
	if table.Length() == 0 {
		return []types.SearchResultRow{}, nil
	}

	rows := table.Find("tr")
	labels, err := columnLabels(doc)
	if err != nil {
		labels = headerLabels(rows.First())
	}

	results := make([]types.SearchResultRow, 0, rows.Length())
	for i := 1; i < rows.Length(); i++ {
		cells := make(map[string]*goquery.Selection, len(labels))
		rows.Eq(i).Find("td").Each(func(j int, s *goquery.Selection) {
			if j < len(labels) {
				cells[labels[j]] = s
			}
		})
		if len(cells) == 0 {
			continue
		}

		row := types.SearchResultRow{
			IssueType:   text(cells[labelSearchType]),
			Step:        text(cells[labelSearchStatus]),
			Description: strippedText(orEmpty(cells[labelSearchDescription])),
			Contact:     text(cells[labelSearchContact]),
		}
		row.UUID, row.Number = anchor(cells[labelSearchNumber])
		row.UUIDContragent, row.NameContragent = anchor(cells[labelSearchSource])
		row.UUIDResponsible, row.NameResponsible = anchor(cells[labelSearchResponsible])

		results = append(results, row)
	}
	return results, nil
}

func headerLabels(tr *goquery.Selection) []string {
	var labels []string
	tr.Find("th, td").Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(s.Text()))
	})
	return labels
}

// anchor returns the uuid and text of the first link in the cell, or empty
// strings when the cell has none.
func anchor(cell *goquery.Selection) (string, string) {
	link := orEmpty(cell).Find("a[href]").First()
	if link.Length() == 0 {
		return "", ""
	}

	href, _ := link.Attr("href")
	uuid, err := uuidFromHref(href)
	if err != nil {
		uuid = ""
	}
	return uuid, cellText(link)
}

func text(cell *goquery.Selection) string {
	return cellText(orEmpty(cell))
}

func orEmpty(cell *goquery.Selection) *goquery.Selection {
	if cell == nil {
		return &goquery.Selection{}
	}
	return cell
}
