package gapfill

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kevinfinalboss/crmreports/internal/parser"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	DateLayout = "02.01.2006"

	labelDay    = "День"
	labelMonth  = "Месяц"
	labelGroup  = "Группа"
	labelRating = "Service Level (%)"
)

// DateRange returns every calendar day in [start, end). The bounds may come
// in any order.
func DateRange(start, end string) ([]time.Time, error) {
	first, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: report start %q", types.ErrCantGetData, start)
	}
	last, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: report end %q", types.ErrCantGetData, end)
	}
	if last.Before(first) {
		first, last = last, first
	}

	var days []time.Time
	for day := first; day.Before(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days, nil
}

func sameDay(row parser.Row, day time.Time) bool {
	return row[labelDay] == strconv.Itoa(day.Day())
}

func sameDate(row parser.Row, day time.Time) bool {
	return sameDay(row, day) && row[labelMonth] == strconv.Itoa(int(day.Month()))
}

func rowsOf(rows []parser.Row, match func(parser.Row) bool) []parser.Row {
	var matched []parser.Row
	for _, row := range rows {
		if match(row) {
			matched = append(matched, row)
		}
	}
	return matched
}

func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed count %q", types.ErrCantGetData, raw)
	}
	return value, nil
}

func parseRate(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed number %q", types.ErrCantGetData, raw)
	}
	return value, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
