package gapfill

import (
	"strconv"
	"strings"

	"github.com/kevinfinalboss/crmreports/internal/parser"
	"github.com/kevinfinalboss/crmreports/pkg/types"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	labelSegment     = "Сегмент"
	labelReceived    = "Поступило"
	labelAverageTime = "Среднее время"
)

// AHT returns one entry per day with a row for every segment seen in the
// period. A row whose received counter is not a number is the day summary
// and gets the sum of the other rows.
func AHT(table *parser.Table) ([]types.AhtDay, error) {
	days, err := DateRange(table.Start, table.End)
	if err != nil {
		return nil, err
	}

	byDay := make([][]parser.Row, len(days))
	segments := sets.New[string]()
	for i, day := range days {
		byDay[i] = rowsOf(table.Rows, func(row parser.Row) bool { return sameDate(row, day) })
		for _, row := range byDay[i] {
			segments.Insert(row[labelSegment])
		}
	}

	result := make([]types.AhtDay, 0, len(days))
	for i, day := range days {
		date := day.Format(DateLayout)

		parsed, err := ahtRows(byDay[i], date)
		if err != nil {
			return nil, err
		}

		entry := types.AhtDay{Date: date}
		for _, segment := range sets.List(segments) {
			aht, ok := parsed[segment]
			if !ok {
				aht = types.Aht{Date: date, Segment: segment}
			}
			entry.Segments = append(entry.Segments, aht)
		}
		result = append(result, entry)
	}
	return result, nil
}

func ahtRows(rows []parser.Row, date string) (map[string]types.Aht, error) {
	parsed := make(map[string]types.Aht, len(rows))

	received := 0
	var summary []string
	for _, row := range rows {
		segment := row[labelSegment]
		if _, seen := parsed[segment]; seen {
			continue
		}

		level, err := parseRate(row[labelAverageTime])
		if err != nil {
			return nil, err
		}
		aht := types.Aht{Date: date, Segment: segment, AHTLevel: level}

		count, err := strconv.Atoi(strings.TrimSpace(row[labelReceived]))
		if err != nil {
			summary = append(summary, segment)
		} else {
			aht.IssuesReceived = count
			received += count
		}
		parsed[segment] = aht
	}

	for _, segment := range summary {
		aht := parsed[segment]
		aht.IssuesReceived = received
		parsed[segment] = aht
	}
	return parsed, nil
}
