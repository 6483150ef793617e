package gapfill

import (
	"github.com/kevinfinalboss/crmreports/internal/parser"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	labelFLRLevel      = "FLR по дн (в %)"
	labelClosedByTP    = "Закрыто ТП без др отд"
	labelPrimaryIssues = "Количество первичных"
)

// FLR rows are keyed by day and month since the period may cross a month.
func FLR(table *parser.Table) ([]types.Flr, error) {
	days, err := DateRange(table.Start, table.End)
	if err != nil {
		return nil, err
	}

	result := make([]types.Flr, 0, len(days))
	for _, day := range days {
		entry := types.Flr{Date: day.Format(DateLayout)}

		if rows := rowsOf(table.Rows, func(row parser.Row) bool { return sameDate(row, day) }); len(rows) > 0 {
			if entry.FLRLevel, err = parseRate(rows[0][labelFLRLevel]); err != nil {
				return nil, err
			}
			if entry.NumIssuesClosedIndependently, err = parseCount(rows[0][labelClosedByTP]); err != nil {
				return nil, err
			}
			if entry.TotalPrimaryIssues, err = parseCount(rows[0][labelPrimaryIssues]); err != nil {
				return nil, err
			}
		}

		result = append(result, entry)
	}
	return result, nil
}
