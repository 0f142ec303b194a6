// Package agg implements grouping, aggregation, bucketing, pivoting and
// sorting over in-memory row sets. The query engine and the chart-spec
// builder share this exact logic.
package agg

import (
	"sort"
	"strings"

	"github.com/tabletalk/tabletalk/schema"
)

// ScalarValue is the outcome of a scalar-mode aggregation. Min and max
// operate on raw value ordering and may therefore yield a non-numeric value.
type ScalarValue struct {
	Num     float64
	Text    string
	Numeric bool
}

// Display renders the scalar value for narration.
func (v ScalarValue) Display(format func(float64) string) string {
	if v.Numeric {
		return format(v.Num)
	}
	return v.Text
}

// Scalar computes a single aggregation over the metric column of rows.
// For CountAgg the metric may be empty; every other function requires one.
func Scalar(rows []schema.Row, metric string, fn schema.Aggregation) ScalarValue {
	if fn == schema.CountAgg {
		return ScalarValue{Num: float64(len(rows)), Numeric: true}
	}

	switch fn {
	case schema.MinAgg, schema.MaxAgg:
		return orderedExtreme(rows, metric, fn == schema.MaxAgg)
	default:
		vals := numericValues(rows, metric)
		return ScalarValue{Num: reduce(vals, fn), Numeric: true}
	}
}

// Grouped partitions rows by dimension value and applies the aggregation
// function within each group. With an empty metric each row contributes a
// constant 1, which makes every function a row count in disguise. Group
// order is first-seen order; the sorter reorders later.
func Grouped(rows []schema.Row, dimension, metric string, fn schema.Aggregation) []schema.AggRow {
	keys, groups := partition(rows, dimension)

	out := make([]schema.AggRow, 0, len(keys))
	for _, key := range keys {
		group := groups[key]
		var value float64
		switch {
		case fn == schema.CountAgg || metric == "":
			value = float64(len(group))
		default:
			value = reduce(numericValues(group, metric), fn)
		}
		out = append(out, schema.AggRow{Dimension: key, Value: value})
	}
	return out
}

// DistinctValues returns the distinct stringified values of a column in
// first-seen order, feeding list-mode answers.
func DistinctValues(rows []schema.Row, column string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		v := schema.Stringify(row[column])
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// partition splits rows by stringified dimension value, returning keys in
// first-seen order alongside the groups.
func partition(rows []schema.Row, dimension string) ([]string, map[string][]schema.Row) {
	groups := make(map[string][]schema.Row)
	var keys []string
	for _, row := range rows {
		key := schema.Stringify(row[dimension])
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}
	return keys, groups
}

// numericValues collects the metric column's values that coerce to numbers.
// Unparseable cells are dropped, so a stray "N/A" cannot poison an average.
func numericValues(rows []schema.Row, metric string) []float64 {
	vals := make([]float64, 0, len(rows))
	for _, row := range rows {
		if n, ok := schema.ParseNumeric(row[metric]); ok {
			vals = append(vals, n)
		}
	}
	return vals
}

// reduce applies a numeric aggregation function over collected values.
func reduce(vals []float64, fn schema.Aggregation) float64 {
	if len(vals) == 0 {
		return 0
	}
	switch fn {
	case schema.AvgAgg:
		return sum(vals) / float64(len(vals))
	case schema.MedianAgg:
		return median(vals)
	case schema.ModeAgg:
		return mode(vals)
	case schema.MinAgg:
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case schema.MaxAgg:
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case schema.CountAgg:
		return float64(len(vals))
	default: // SumAgg
		return sum(vals)
	}
}

func sum(vals []float64) float64 {
	var total float64
	for _, v := range vals {
		total += v
	}
	return total
}

// median returns the midpoint of the value-sorted list, averaging the two
// central values when the count is even.
func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mode returns the first value achieving the highest frequency, ties broken
// by first-seen order.
func mode(vals []float64) float64 {
	counts := make(map[float64]int)
	var order []float64
	for _, v := range vals {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best := order[0]
	for _, v := range order {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

// orderedExtreme picks the min or max over the filtered, non-nil value list
// without numeric coercion: numeric ordering when every value is numeric,
// lexicographic otherwise.
func orderedExtreme(rows []schema.Row, metric string, wantMax bool) ScalarValue {
	var raws []any
	for _, row := range rows {
		if v := row[metric]; v != nil {
			raws = append(raws, v)
		}
	}
	if len(raws) == 0 {
		return ScalarValue{Numeric: true}
	}

	allNumeric := true
	nums := make([]float64, len(raws))
	for i, v := range raws {
		n, ok := schema.ParseNumeric(v)
		if !ok {
			allNumeric = false
			break
		}
		nums[i] = n
	}

	if allNumeric {
		best := nums[0]
		for _, n := range nums[1:] {
			if (wantMax && n > best) || (!wantMax && n < best) {
				best = n
			}
		}
		return ScalarValue{Num: best, Numeric: true}
	}

	best := schema.Stringify(raws[0])
	for _, v := range raws[1:] {
		s := schema.Stringify(v)
		cmp := strings.Compare(s, best)
		if (wantMax && cmp > 0) || (!wantMax && cmp < 0) {
			best = s
		}
	}
	return ScalarValue{Text: best}
}
