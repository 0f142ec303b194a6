package agg

import (
	"sort"
	"strings"

	"github.com/tabletalk/tabletalk/schema"
)

// BreakdownJoiner glues multiple breakdown dimension values into one
// composite series key.
const BreakdownJoiner = " | "

// Pivot is a category -> breakdown -> value table rendered as one series per
// distinct breakdown value, each holding one point per category.
type Pivot struct {
	Categories []string
	Series     []schema.Series
}

// PivotRows pivots rows into multi-series form for stacked or grouped
// charts. Categories and breakdown keys keep first-seen order; a missing
// category/breakdown cell stays 0.
func PivotRows(rows []schema.Row, category string, breakdowns []string, metric string, fn schema.Aggregation) Pivot {
	var categories, seriesKeys []string
	catSeen := make(map[string]struct{})
	keySeen := make(map[string]struct{})
	cells := make(map[string]map[string][]schema.Row)

	for _, row := range rows {
		cat := schema.Stringify(row[category])
		key := breakdownKey(row, breakdowns)

		if _, ok := catSeen[cat]; !ok {
			catSeen[cat] = struct{}{}
			categories = append(categories, cat)
		}
		if _, ok := keySeen[key]; !ok {
			keySeen[key] = struct{}{}
			seriesKeys = append(seriesKeys, key)
		}
		if cells[cat] == nil {
			cells[cat] = make(map[string][]schema.Row)
		}
		cells[cat][key] = append(cells[cat][key], row)
	}

	series := make([]schema.Series, 0, len(seriesKeys))
	for _, key := range seriesKeys {
		data := make([]float64, len(categories))
		for i, cat := range categories {
			group := cells[cat][key]
			if len(group) == 0 {
				continue
			}
			if fn == schema.CountAgg || metric == "" {
				data[i] = float64(len(group))
			} else {
				data[i] = reduce(numericValues(group, metric), fn)
			}
		}
		series = append(series, schema.Series{Name: key, Data: data})
	}

	return Pivot{Categories: categories, Series: series}
}

// Normalize rescales a pivot to 100%-stacked form: within each category,
// every breakdown value is divided by the category's cross-breakdown total
// and multiplied by 100.
func Normalize(p Pivot) Pivot {
	out := Pivot{Categories: p.Categories, Series: make([]schema.Series, len(p.Series))}

	totals := make([]float64, len(p.Categories))
	for _, s := range p.Series {
		for i, v := range s.Data {
			totals[i] += v
		}
	}

	for si, s := range p.Series {
		data := make([]float64, len(s.Data))
		for i, v := range s.Data {
			if totals[i] != 0 {
				data[i] = v / totals[i] * 100
			}
		}
		out.Series[si] = schema.Series{Name: s.Name, Data: data}
	}
	return out
}

// BucketTopN collapses the long tail of a grouped result: when not in full
// view and more than TopNBuckets categories exist, the largest ten stay
// verbatim and the rest are summed into a trailing Others bucket.
func BucketTopN(rows []schema.AggRow, fullView bool) []schema.AggRow {
	if fullView || len(rows) <= schema.TopNBuckets {
		return rows
	}

	ranked := append([]schema.AggRow(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })

	kept := ranked[:schema.TopNBuckets]
	var others float64
	for _, r := range ranked[schema.TopNBuckets:] {
		others += r.Value
	}
	return append(kept, schema.AggRow{Dimension: schema.OthersLabel, Value: others})
}

func breakdownKey(row schema.Row, breakdowns []string) string {
	if len(breakdowns) == 1 {
		return schema.Stringify(row[breakdowns[0]])
	}
	parts := make([]string, len(breakdowns))
	for i, b := range breakdowns {
		parts[i] = schema.Stringify(row[b])
	}
	return strings.Join(parts, BreakdownJoiner)
}
