package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	legendTableID = "stdViewpart0.legendTableList"
	dataTableID   = "stdViewpart0.part0_TableList"

	legendLabelSelector = `td[style="white-space:nowrap;"]`
	legendValueSelector = `td[style="width:100%;"]`

	labelTransferFrom = "Дата перевода, с"
	labelTransferTo   = "Дата перевода, по"
	labelRegisterFrom = "Дата регистр, с"
	labelRegisterTo   = "Дата регистр, по"
)

// Row is one physical table row keyed by column label.
type Row map[string]string

// Table is the raw content of a KPI report page together with the period
// stated in its header.
type Table struct {
	Start  string
	End    string
	Labels []string
	Rows   []Row
}

type kpiLayout struct {
	startLabel string
	endLabel   string
	skipHead   int
	skipTail   int
}

func layoutFor(page types.PageKind) (kpiLayout, error) {
	switch page {
	case types.PageServiceLevel:
		return kpiLayout{labelTransferFrom, labelTransferTo, 3, 1}, nil
	case types.PageMTTR:
		return kpiLayout{labelRegisterFrom, labelRegisterTo, 3, 0}, nil
	case types.PageFLR:
		return kpiLayout{labelTransferFrom, labelTransferTo, 3, 1}, nil
	case types.PageAHT:
		return kpiLayout{labelTransferFrom, labelTransferTo, 1, 0}, nil
	}
	return kpiLayout{}, fmt.Errorf("%w: page %s is not a KPI report", types.ErrCantGetData, page)
}

func KPITable(page types.PageKind, body string) (*Table, error) {
	layout, err := layoutFor(page)
	if err != nil {
		return nil, err
	}

	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	start, end, err := reportPeriod(doc, layout.startLabel, layout.endLabel)
	if err != nil {
		return nil, err
	}

	labels, err := columnLabels(doc)
	if err != nil {
		return nil, err
	}

	dataTable := doc.Find("table" + byID(dataTableID)).First()
	if dataTable.Length() == 0 {
		return nil, fmt.Errorf("%w: table %q not found", types.ErrCantGetData, dataTableID)
	}

	rows := dataTable.Find("tr")
	var dataRows []*goquery.Selection
	for i := layout.skipHead; i < rows.Length()-layout.skipTail; i++ {
		dataRows = append(dataRows, rows.Eq(i))
	}

	return &Table{
		Start:  start,
		End:    end,
		Labels: labels,
		Rows:   buildRows(dataRows, labels),
	}, nil
}

func reportPeriod(doc *goquery.Document, startLabel, endLabel string) (string, string, error) {
	legend := doc.Find("table" + byID(legendTableID)).First()
	if legend.Length() == 0 {
		return "", "", fmt.Errorf("%w: table %q not found", types.ErrCantGetData, legendTableID)
	}

	var names, values []string
	legend.Find(legendLabelSelector).Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.ReplaceAll(strings.TrimSpace(s.Text()), ":", ""))
	})
	legend.Find(legendValueSelector).Each(func(_ int, s *goquery.Selection) {
		values = append(values, strings.TrimSpace(s.Text()))
	})

	options := make(map[string]string, len(names))
	for i := 0; i < len(names) && i < len(values); i++ {
		options[names[i]] = values[i]
	}

	start, end := options[startLabel], options[endLabel]
	if start == "" || end == "" {
		return "", "", fmt.Errorf("%w: report period %q/%q not found", types.ErrCantGetData, startLabel, endLabel)
	}
	return start, end, nil
}

// buildRows zips cells with labels. Rows of one day span several physical
// rows and only the first carries the leading columns, so a short row takes
// its missing leading cells from the previous one.
func buildRows(rows []*goquery.Selection, labels []string) []Row {
	result := make([]Row, 0, len(rows))

	var previous []string
	for _, tr := range rows {
		var cells []string
		tr.Find("td").Each(func(_ int, s *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(s.Text()))
		})
		if len(cells) == 0 {
			continue
		}

		if missing := len(labels) - len(cells); missing > 0 && len(previous) >= missing {
			cells = append(append([]string{}, previous[:missing]...), cells...)
		}
		previous = cells

		row := make(Row, len(labels))
		for i, label := range labels {
			if i < len(cells) {
				row[label] = cells[i]
			}
		}
		result = append(result, row)
	}
	return result
}
