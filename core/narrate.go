package core

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tabletalk/tabletalk/core/agg"
	"github.com/tabletalk/tabletalk/schema"
)

// yearPattern extracts an explicit 20xx year mention from the query.
var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// bottomHighlightWords flip the grouped highlight from the top category to
// the bottom one.
var bottomHighlightWords = []string{"lowest", "min", "bottom"}

// NarrateScalar renders the answer for a scalar aggregation.
func NarrateScalar(query string, fn schema.Aggregation, metric string, value agg.ScalarValue) string {
	if fn == schema.CountAgg && metric == "" {
		return fmt.Sprintf("The total count is **%s**.", FormatValue(value.Num))
	}

	display := value.Display(FormatValue)
	if year := yearPattern.FindString(query); year != "" {
		return fmt.Sprintf("The %s %s in %s is **%s**.", schema.AggregationLabel(fn), titleCase(metric), year, display)
	}
	return fmt.Sprintf("The %s %s is **%s**.", schema.AggregationLabel(fn), titleCase(metric), display)
}

// NarrateGrouped renders the answer for a grouped aggregation, highlighting
// the top-valued category, or the bottom one when the query asks for it.
func NarrateGrouped(query string, fn schema.Aggregation, metric, dimension string, rows []schema.AggRow) string {
	subject := titleCase(metric)
	if metric == "" {
		subject = "Records"
	}
	answer := fmt.Sprintf("Here is the **%s %s by %s**.", schema.AggregationLabel(fn), subject, titleCase(dimension))
	if len(rows) == 0 {
		return answer
	}

	if containsAny(query, bottomHighlightWords) {
		low := rows[0]
		for _, r := range rows[1:] {
			if r.Value < low.Value {
				low = r
			}
		}
		return fmt.Sprintf("%s %s has the lowest value at **%s**.", answer, low.Dimension, FormatValue(low.Value))
	}

	top := rows[0]
	for _, r := range rows[1:] {
		if r.Value > top.Value {
			top = r
		}
	}
	return fmt.Sprintf("%s %s leads with **%s**.", answer, top.Dimension, FormatValue(top.Value))
}

// NarrateList enumerates distinct dimension values, truncated at
// MaxListValues with a remainder note.
func NarrateList(dimension string, values []string) string {
	total := len(values)
	shown := values
	if total > schema.MaxListValues {
		shown = values[:schema.MaxListValues]
	}

	answer := fmt.Sprintf("Found %d distinct %s values: %s", total, titleCase(dimension), strings.Join(shown, ", "))
	if rest := total - len(shown); rest > 0 {
		answer += fmt.Sprintf(", and %d more…", rest)
	}
	return answer + "."
}

// NarrateEmptyFilter describes a filter set that matched nothing.
func NarrateEmptyFilter(filters map[string]string) string {
	if len(filters) == 0 {
		return "No rows matched your question."
	}
	parts := make([]string, 0, len(filters))
	for column, value := range filters {
		parts = append(parts, fmt.Sprintf("%s ~ %q", column, value))
	}
	sort.Strings(parts)
	return fmt.Sprintf("No rows matched the filters %s.", strings.Join(parts, ", "))
}

// FormatValue renders an aggregated number: integers stay whole, everything
// else keeps two decimals.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// titleCase capitalizes each word of a column name for display, treating
// underscores and hyphens as word breaks.
func titleCase(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}
