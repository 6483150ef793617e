package gapfill

import (
	"github.com/kevinfinalboss/crmreports/internal/parser"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	labelTotalTickets = "Всего ТТ"
	labelAverageMTTR  = "Средн МТТР"
	labelAverageTP    = "Средн МТТР ТП"
)

func MTTR(table *parser.Table) ([]types.Mttr, error) {
	days, err := DateRange(table.Start, table.End)
	if err != nil {
		return nil, err
	}

	result := make([]types.Mttr, 0, len(days))
	for _, day := range days {
		entry := types.Mttr{Day: day.Day(), Date: day.Format(DateLayout)}

		if rows := rowsOf(table.Rows, func(row parser.Row) bool { return sameDay(row, day) }); len(rows) > 0 {
			if entry.TotalIssues, err = parseCount(rows[0][labelTotalTickets]); err != nil {
				return nil, err
			}
			if entry.AverageMTTR, err = parseRate(rows[0][labelAverageMTTR]); err != nil {
				return nil, err
			}
			if entry.AverageMTTRTechSupport, err = parseRate(rows[0][labelAverageTP]); err != nil {
				return nil, err
			}
		}

		result = append(result, entry)
	}
	return result, nil
}

