package agg

import (
	"sort"
	"strings"

	"github.com/tabletalk/tabletalk/schema"
)

// timeLikeHints mark a dimension as chronological by name.
var timeLikeHints = []string{"date", "year", "month", "time"}

// IsTimeLike reports whether a dimension should sort chronologically, either
// because its name suggests a time axis or because the chart is a line chart.
func IsTimeLike(dimension string, chartType schema.ChartType) bool {
	if chartType == schema.LineChart {
		return true
	}
	lower := strings.ToLower(dimension)
	for _, hint := range timeLikeHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// SortRows returns a new ordering of a grouped result: ascending by parsed
// date for time-like dimensions (lexicographic when dates fail to parse),
// descending by aggregated value otherwise. Ties keep aggregator order.
func SortRows(rows []schema.AggRow, dimension string, chartType schema.ChartType) []schema.AggRow {
	sorted := append([]schema.AggRow(nil), rows...)

	if IsTimeLike(dimension, chartType) {
		sort.SliceStable(sorted, func(i, j int) bool {
			return chronoLess(sorted[i].Dimension, sorted[j].Dimension)
		})
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })
	return sorted
}

func chronoLess(a, b string) bool {
	ta, okA := schema.ParseDate(a)
	tb, okB := schema.ParseDate(b)
	if okA && okB {
		return ta.Before(tb)
	}
	return a < b
}
