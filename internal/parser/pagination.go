package parser

import "fmt"

const pageMarkerFormat = "advSearchTab.searchResults_page%d"

// Pagination counts consecutive page markers starting from 1.
func Pagination(body string) (int, error) {
	doc, err := newDocument(body)
	if err != nil {
		return 0, err
	}

	count := 0
	for doc.Find(byID(fmt.Sprintf(pageMarkerFormat, count+1))).Length() > 0 {
		count++
	}
	return count, nil
}
