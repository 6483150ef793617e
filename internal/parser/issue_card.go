package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	CardTimeLayout = "02.01.2006 15:04"
	serviceMarker  = "Услуга"
)

var requisiteLabels = []string{
	"ИНН",
	"КПП",
	"ОГРН",
	"Юридический адрес",
	"Фактический адрес",
	"Банк",
	"БИК",
	"Р/с",
	"К/с",
}

var requisitePattern = regexp.MustCompile(`(` + strings.Join(quoteAll(requisiteLabels), "|") + `)\s*:`)

// fieldRecipe maps one element of the issue card onto the issue.
type fieldRecipe struct {
	id       string
	required bool
	apply    func(s *goquery.Selection, issue *types.Issue) error
}

var cardRecipes = []fieldRecipe{
	{id: "number", required: true, apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.Number = strippedText(s)
		return nil
	}},
	{id: "title", required: true, apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.Name = strippedText(s)
		return nil
	}},
	{id: "stage", required: true, apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.Step = strippedText(s)
		return nil
	}},
	{id: "BOCase", required: true, apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.IssueType = strippedText(s)
		return nil
	}},
	{id: "stateResponsible", apply: applyResponsible},
	{id: "contragent", apply: applyContragent},
	{id: "contragentCategory", apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.ContragentCategory = strippedText(s)
		return nil
	}},
	{id: "requestDescription", apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.Description = strippedText(s)
		return nil
	}},
	{id: "creationDate", apply: func(s *goquery.Selection, issue *types.Issue) error {
		return parseCardTime(s, &issue.CreationDate)
	}},
	{id: "services", apply: applyServices},
	{id: "srvInf", apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.InfoService = splitServiceInfo(strippedText(s))
		return nil
	}},
	{id: "diagnostica", apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.Diagnostics = parseDiagnostics(textLines(s))
		return nil
	}},
	{id: "requiredDate", apply: func(s *goquery.Selection, issue *types.Issue) error {
		return parseCardTime(s, &issue.RequiredDate)
	}},
	{id: "closeDate", apply: func(s *goquery.Selection, issue *types.Issue) error {
		return parseCardTime(s, &issue.CloseDate)
	}},
	{id: "clientRequisites", apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.ClientRequisites = parseRequisites(strippedText(s))
		return nil
	}},
	{id: "contacts", apply: func(s *goquery.Selection, issue *types.Issue) error {
		issue.Contacts = textLines(s)
		return nil
	}},
}

var returnToWorkIDs = []string{"obrd", "obrd1", "obrd2"}

func IssueCard(body string, now time.Time) (*types.Issue, error) {
	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	issue := &types.Issue{}
	for _, recipe := range cardRecipes {
		s := doc.Find(byID(recipe.id)).First()
		if s.Length() == 0 {
			if recipe.required {
				return nil, fmt.Errorf("%w: issue card has no %q element", types.ErrCantGetData, recipe.id)
			}
			continue
		}
		if err := recipe.apply(s, issue); err != nil {
			return nil, fmt.Errorf("issue card %q: %w", recipe.id, err)
		}
	}

	issue.ReturnToWorkTime = returnToWorkTime(doc, now)
	return issue, nil
}

func applyResponsible(s *goquery.Selection, issue *types.Issue) error {
	link := s.Find("a").First()
	if link.Length() == 0 {
		return nil
	}

	if href, ok := link.Attr("href"); ok {
		uuid, err := uuidFromHref(href)
		if err != nil {
			return err
		}
		issue.UUIDResponsible = uuid
	}
	issue.Responsible = strippedText(link)
	return nil
}

func applyContragent(s *goquery.Selection, issue *types.Issue) error {
	issue.NameContragent = cellText(s)

	href, _ := s.Find("a").First().Attr("href")
	if uuid, err := uuidFromHref(href); err == nil {
		issue.UUIDContragent = uuid
	}
	return nil
}

func applyServices(s *goquery.Selection, issue *types.Issue) error {
	var names, uuids []string
	links := s.Find("a")
	for i := range links.Nodes {
		link := links.Eq(i)
		href, _ := link.Attr("href")
		uuid, err := uuidFromHref(href)
		if err != nil {
			return err
		}
		uuids = append(uuids, uuid)
		names = append(names, strippedText(link))
	}

	issue.NameService = names
	issue.UUIDService = uuids
	return nil
}

func parseCardTime(s *goquery.Selection, dst *time.Time) error {
	raw := cellText(s)
	if raw == "" {
		return nil
	}

	parsed, err := time.ParseInLocation(CardTimeLayout, raw, time.Local)
	if err != nil {
		return fmt.Errorf("%w: malformed time %q", types.ErrCantGetData, raw)
	}
	*dst = parsed
	return nil
}

// splitServiceInfo splits a block listing several services, each starting
// with the service marker.
func splitServiceInfo(text string) []string {
	var services []string
	for _, part := range strings.Split(text, serviceMarker) {
		if part = strings.TrimSpace(part); part != "" {
			services = append(services, serviceMarker+" "+part)
		}
	}
	return services
}

// parseDiagnostics reads "key: value" lines. A line without a colon
// continues the value of the previous key.
func parseDiagnostics(lines []string) []types.KeyValue {
	var pairs []types.KeyValue
	for _, line := range lines {
		key, value, found := strings.Cut(line, ":")
		if found {
			pairs = append(pairs, types.KeyValue{
				Key:   strings.TrimSpace(key),
				Value: strings.TrimSpace(value),
			})
			continue
		}

		if len(pairs) == 0 {
			pairs = append(pairs, types.KeyValue{Value: line})
			continue
		}

		last := &pairs[len(pairs)-1]
		last.Value = strings.TrimSpace(last.Value + " " + line)
	}
	return pairs
}

func parseRequisites(text string) []types.KeyValue {
	matches := requisitePattern.FindAllStringSubmatchIndex(text, -1)

	pairs := make([]types.KeyValue, 0, len(matches))
	for i, match := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		pairs = append(pairs, types.KeyValue{
			Key:   text[match[2]:match[3]],
			Value: strings.TrimSpace(strings.Trim(strings.TrimSpace(text[match[1]:end]), ",;")),
		})
	}
	return pairs
}

// returnToWorkTime picks the latest parseable time among the return fields.
// Without one the issue is parked until noon of next year's last day.
func returnToWorkTime(doc *goquery.Document, now time.Time) time.Time {
	var latest time.Time
	for _, id := range returnToWorkIDs {
		raw := cellText(doc.Find(byID(id)).First())
		if raw == "" {
			continue
		}
		parsed, err := time.ParseInLocation(CardTimeLayout, raw, time.Local)
		if err != nil {
			continue
		}
		if parsed.After(latest) {
			latest = parsed
		}
	}

	if latest.IsZero() {
		return time.Date(now.Year()+1, time.December, 31, 12, 0, 0, 0, now.Location())
	}
	return latest
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = regexp.QuoteMeta(value)
	}
	return quoted
}
