package gapfill

import (
	"fmt"
	"time"

	"github.com/kevinfinalboss/crmreports/internal/parser"
	"github.com/kevinfinalboss/crmreports/pkg/types"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	supportGroupCount = 2
	serviceLevelCols  = 7

	elapsedServiceLevel = 100.0
	pendingServiceLevel = 0.0
)

// ServiceLevel builds one entry per day of the report period. Each entry has
// a row for both support groups plus a total row. Missing rows are 100% for
// days already over and 0% for today and later.
func ServiceLevel(table *parser.Table, now time.Time) ([]types.ServiceLevelDay, error) {
	if len(table.Labels) < serviceLevelCols {
		return nil, fmt.Errorf("%w: service level report has %d columns", types.ErrCantGetData, len(table.Labels))
	}

	days, err := DateRange(table.Start, table.End)
	if err != nil {
		return nil, err
	}

	groups := sets.New[string]()
	for _, row := range table.Rows {
		groups.Insert(row[labelGroup])
	}
	if groups.Len() != supportGroupCount {
		return nil, fmt.Errorf("%w: expected %d support groups, got %d", types.ErrCantGetData, supportGroupCount, groups.Len())
	}

	today := startOfDay(now)
	result := make([]types.ServiceLevelDay, 0, len(days))
	for _, day := range days {
		dayRows := rowsOf(table.Rows, func(row parser.Row) bool { return sameDay(row, day) })

		fallback := pendingServiceLevel
		if day.Before(today) {
			fallback = elapsedServiceLevel
		}

		entry := types.ServiceLevelDay{
			Date: day.Format(DateLayout),
			Day:  day.Day(),
		}
		for _, group := range sets.List(groups) {
			sl := types.ServiceLevel{Day: day.Day(), Group: group, ServiceLevel: fallback}
			if row := findGroup(dayRows, group); row != nil {
				if sl, err = serviceLevelRow(row, table.Labels, day.Day()); err != nil {
					return nil, err
				}
			}
			entry.Groups = append(entry.Groups, sl)
		}
		entry.Total = total(entry.Groups, day.Day())

		result = append(result, entry)
	}
	return result, nil
}

func findGroup(rows []parser.Row, group string) parser.Row {
	for _, row := range rows {
		if row[labelGroup] == group {
			return row
		}
	}
	return nil
}

// serviceLevelRow reads the counters by position since their titles carry the
// deadline in minutes.
func serviceLevelRow(row parser.Row, labels []string, day int) (types.ServiceLevel, error) {
	sl := types.ServiceLevel{Day: day, Group: row[labelGroup]}

	counters := []*int{&sl.TotalIssues, &sl.TotalPrimaryIssues, &sl.NumIssuesBeforeDeadline, &sl.NumIssuesAfterDeadline}
	for i, dst := range counters {
		value, err := parseCount(row[labels[i+2]])
		if err != nil {
			return sl, err
		}
		*dst = value
	}

	rating := row[labelRating]
	if rating == "" {
		rating = row[labels[6]]
	}
	value, err := parseRate(rating)
	if err != nil {
		return sl, err
	}
	sl.ServiceLevel = value
	return sl, nil
}

// total sums the counters and averages the group percentages.
func total(groups []types.ServiceLevel, day int) types.ServiceLevel {
	sum := types.ServiceLevel{Day: day, Group: types.TotalGroupName}
	if len(groups) == 0 {
		return sum
	}

	var rating float64
	for _, g := range groups {
		sum.TotalIssues += g.TotalIssues
		sum.TotalPrimaryIssues += g.TotalPrimaryIssues
		sum.NumIssuesBeforeDeadline += g.NumIssuesBeforeDeadline
		sum.NumIssuesAfterDeadline += g.NumIssuesAfterDeadline
		rating += g.ServiceLevel
	}
	sum.ServiceLevel = rating / float64(len(groups))
	return sum
}
