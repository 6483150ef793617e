package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	issueHeaderRows = 7
	issueFooterRows = 1

	labelIssue       = "Обращение"
	labelStepTime    = "Время решения"
	labelIssueType   = "Тип обращения"
	labelStep        = "Состояние"
	labelResponsible = "Ответственный"
)

var (
	issueNumberPattern = regexp.MustCompile(`\d{7,10}`)
	numberPattern      = regexp.MustCompile(`\d+`)
)

// IssuesTable reads the open issues of a support group. Each row yields an
// issue whose last edit time is now minus the time spent on the current step.
func IssuesTable(body string, now time.Time) ([]*types.Issue, error) {
	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	labels, err := columnLabels(doc)
	if err != nil {
		return nil, err
	}

	rows := doc.Find(".supp tr")
	if rows.Length() <= issueHeaderRows+issueFooterRows {
		return []*types.Issue{}, nil
	}
	rows = rows.Slice(issueHeaderRows, rows.Length()-issueFooterRows)

	issues := make([]*types.Issue, 0, rows.Length())
	for i := range rows.Nodes {
		issue, err := parseIssueRow(rows.Eq(i), labels, now)
		if err != nil {
			return nil, fmt.Errorf("issues row %d: %w", i, err)
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func parseIssueRow(row *goquery.Selection, labels []string, now time.Time) (*types.Issue, error) {
	cells := make(map[string]string, len(labels))
	row.Find("td").Each(func(i int, s *goquery.Selection) {
		if i < len(labels) {
			cells[labels[i]] = cellText(s)
		}
	})

	for _, label := range []string{labelIssue, labelStepTime, labelIssueType, labelStep, labelResponsible} {
		if _, ok := cells[label]; !ok {
			return nil, fmt.Errorf("%w: column %q is missing", types.ErrCantGetData, label)
		}
	}

	href, _ := row.Find("a[href]").First().Attr("href")
	uuid, err := uuidFromHref(href)
	if err != nil {
		return nil, err
	}

	number, err := issueNumber(cells[labelIssue])
	if err != nil {
		return nil, err
	}

	stepTime, err := stepDuration(cells[labelStepTime])
	if err != nil {
		return nil, err
	}

	return &types.Issue{
		UUID:         uuid,
		Number:       number,
		Name:         cells[labelIssue],
		IssueType:    cells[labelIssueType],
		Step:         cells[labelStep],
		StepTime:     stepTime,
		Responsible:  cells[labelResponsible],
		LastEditTime: now.Add(-stepTime),
	}, nil
}

func issueNumber(name string) (string, error) {
	number := issueNumberPattern.FindString(name)
	if number == "" {
		return "", fmt.Errorf("%w: no issue number in %q", types.ErrCantGetData, name)
	}
	return number, nil
}

// stepDuration reads a "Nd Hh Mmin" fragment. Only the digits matter.
func stepDuration(raw string) (time.Duration, error) {
	parts := numberPattern.FindAllString(raw, 3)
	if len(parts) < 3 {
		return 0, fmt.Errorf("%w: malformed duration %q", types.ErrCantGetData, raw)
	}

	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute}
	var total time.Duration
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: malformed duration %q", types.ErrCantGetData, raw)
		}
		total += time.Duration(value) * units[i]
	}
	return total, nil
}
