package parser

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kevinfinalboss/crmreports/pkg/types"
	"golang.org/x/net/html"
)

const columnLabelSelector = ".supp tr th b"

type Options struct {
	// Name is the generated report title looked up on the report list page.
	Name string
	Now  time.Time
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Result holds the output of one extractor. Page tells which field is set.
type Result struct {
	Page          types.PageKind
	UUIDs         []string
	Issues        []*types.Issue
	Table         *Table
	SearchResults []types.SearchResultRow
	Pages         int
}

func Parse(page types.PageKind, body string, opts Options) (*Result, error) {
	result := &Result{Page: page}

	var err error
	switch page {
	case types.PageReportList:
		result.UUIDs, err = ReportList(body, opts.Name)
	case types.PageIssuesTable:
		result.Issues, err = IssuesTable(body, opts.now())
	case types.PageIssueCard:
		var issue *types.Issue
		issue, err = IssueCard(body, opts.now())
		if issue != nil {
			result.Issues = []*types.Issue{issue}
		}
	case types.PageServiceLevel, types.PageMTTR, types.PageFLR, types.PageAHT:
		result.Table, err = KPITable(page, body)
	case types.PageSearchResult:
		result.SearchResults, err = SearchResults(body)
	case types.PagePagination:
		result.Pages, err = Pagination(body)
	case types.PageNone:
		err = fmt.Errorf("%w: page kind %s has no extractor", types.ErrCantGetData, page)
	default:
		err = fmt.Errorf("%w: unknown page kind %d", types.ErrCantGetData, int(page))
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}

func newDocument(body string) (*goquery.Document, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: empty page body", types.ErrCantGetData)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse page: %v", types.ErrCantGetData, err)
	}
	return doc, nil
}

func columnLabels(doc *goquery.Document) ([]string, error) {
	var labels []string
	doc.Find(columnLabelSelector).Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(s.Text()))
	})

	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no column labels at %q", types.ErrCantGetData, columnLabelSelector)
	}
	return labels, nil
}

func byID(id string) string {
	return fmt.Sprintf(`[id=%q]`, id)
}

func uuidFromHref(href string) (string, error) {
	if href == "" {
		return "", fmt.Errorf("%w: empty link", types.ErrCantGetData)
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("%w: invalid link %q: %v", types.ErrCantGetData, href, err)
	}

	uuid := parsed.Query().Get("uuid")
	if uuid == "" {
		return "", fmt.Errorf("%w: link %q has no uuid", types.ErrCantGetData, href)
	}
	return uuid, nil
}

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(strings.ReplaceAll(s.Text(), "\n", ""))
}

// textLines returns the trimmed, non-empty text nodes under s in document order.
func textLines(s *goquery.Selection) []string {
	var lines []string
	for _, node := range s.Nodes {
		walkText(node, func(text string) {
			lines = append(lines, text)
		})
	}
	return lines
}

func walkText(node *html.Node, fn func(string)) {
	if node.Type == html.TextNode {
		if text := strings.TrimSpace(node.Data); text != "" {
			fn(text)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkText(child, fn)
	}
}

// strippedText joins the text nodes under s and collapses whitespace.
func strippedText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(strings.Join(textLines(s), " ")), " ")
}
