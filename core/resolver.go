package core

import (
	"sort"
	"strings"

	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/schema"
)

// arithmeticKeywords signal that the query wants math over a metric, which
// disqualifies non-numeric columns from metric detection.
var arithmeticKeywords = []string{"average", "avg", "mean", "sum", "total"}

// metricVocabulary backs the last-resort metric fallback. A match returns
// the word itself, not a column; column resolution is deferred to the
// assembly stage.
var metricVocabulary = []string{
	"sales", "revenue", "amount", "profit", "cost", "price",
	"income", "quantity", "spend", "units", "orders",
}

// dimensionVocabulary backs the last-resort dimension fallback.
var dimensionVocabulary = []string{
	"date", "month", "year", "category", "region", "country", "state",
	"city", "customer", "product", "segment", "channel", "department",
	"status", "type",
}

// ResolveEntities extracts metric, dimension, chart type, aggregation and
// filters from a lower-cased query against a typed dataset. A fresh Entities
// value is created per call.
func ResolveEntities(query string, ds *schema.Dataset, tracer contract.Tracer) schema.Entities {
	ents := schema.Entities{Aggregation: DetectAggregation(query)}

	ents.Metric = detectMetric(query, ds, tracer)
	ents.Dimension = detectDimension(query, ds, ents.Metric, tracer)
	ents.ChartType = DetectChartType(query)
	ents.Filters = detectFilters(query, ds, ents.Dimension)

	tracer.Event("resolver", "entities: metric=%q dimension=%q chart=%q agg=%q filters=%d",
		ents.Metric, ents.Dimension, ents.ChartType, ents.Aggregation, len(ents.Filters))
	return ents
}

// detectMetric finds the metric column in priority order: exact column-name
// substring, then column-name token, then the fixed vocabulary.
func detectMetric(query string, ds *schema.Dataset, tracer contract.Tracer) string {
	wantsMath := containsAny(query, arithmeticKeywords)

	// Phase 1: exact column-name substring match.
	for _, col := range ds.Columns {
		if !strings.Contains(query, strings.ToLower(col.Name)) {
			continue
		}
		if wantsMath && col.Type != schema.TypeNumber {
			continue
		}
		tracer.Event("resolver", "metric %q via exact column match", col.Name)
		return col.Name
	}

	// Phase 2: column-name token match.
	for _, col := range ds.Columns {
		for _, token := range splitColumnTokens(col.Name) {
			if !strings.Contains(query, token) {
				continue
			}
			if wantsMath && col.Type != schema.TypeNumber {
				continue
			}
			tracer.Event("resolver", "metric %q via token %q", col.Name, token)
			return col.Name
		}
	}

	// Phase 3: vocabulary fallback returns the word, not a column.
	for _, word := range metricVocabulary {
		if strings.Contains(query, word) {
			tracer.Event("resolver", "metric %q via vocabulary", word)
			return word
		}
	}
	return ""
}

// detectDimension mirrors metric detection for the grouping column, skipping
// columns with names of length <= 2 unless the name is literally "id". A
// column already taken by the metric is only accepted when no other column
// matches, which keeps "amount by category" from grabbing amount twice while
// still allowing a genuine metric/dimension collision to surface for the
// context merger's conflict resolution.
func detectDimension(query string, ds *schema.Dataset, metric string, tracer contract.Tracer) string {
	match := func(skipMetric bool) string {
		for _, col := range ds.Columns {
			if skipDimensionColumn(col.Name) {
				continue
			}
			if skipMetric && col.Name == metric {
				continue
			}
			if strings.Contains(query, strings.ToLower(col.Name)) {
				return col.Name
			}
		}
		for _, col := range ds.Columns {
			if skipDimensionColumn(col.Name) {
				continue
			}
			if skipMetric && col.Name == metric {
				continue
			}
			for _, token := range splitColumnTokens(col.Name) {
				if strings.Contains(query, token) {
					return col.Name
				}
			}
		}
		return ""
	}

	if dim := match(true); dim != "" {
		tracer.Event("resolver", "dimension %q via column match", dim)
		return dim
	}
	if dim := match(false); dim != "" {
		tracer.Event("resolver", "dimension %q via column match (collides with metric)", dim)
		return dim
	}

	for _, word := range dimensionVocabulary {
		if strings.Contains(query, word) {
			tracer.Event("resolver", "dimension %q via vocabulary", word)
			return word
		}
	}
	return ""
}

// detectFilters scans every categorical column for a distinct value whose
// text appears in the query. Candidate values are tried longest-first so a
// short value cannot pre-empt a longer, more specific one; equal lengths tie
// break lexicographically. At most one filter value per column; the
// dimension column is skipped.
func detectFilters(query string, ds *schema.Dataset, dimension string) map[string]string {
	filters := make(map[string]string)

	for _, col := range ds.Columns {
		if col.Type == schema.TypeNumber || col.Name == dimension {
			continue
		}

		seen := make(map[string]struct{})
		var candidates []string
		for _, row := range ds.Rows {
			v, ok := row[col.Name].(string)
			if !ok {
				continue
			}
			lower := strings.ToLower(strings.TrimSpace(v))
			if len(lower) <= 2 {
				continue
			}
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			candidates = append(candidates, lower)
		}

		sort.Slice(candidates, func(i, j int) bool {
			if len(candidates[i]) != len(candidates[j]) {
				return len(candidates[i]) > len(candidates[j])
			}
			return candidates[i] < candidates[j]
		})

		for _, val := range candidates {
			if strings.Contains(query, val) {
				filters[col.Name] = val
				break
			}
		}
	}
	return filters
}

// MatchColumn maps a vocabulary word back to a concrete column, used when
// the resolver deferred column resolution. It tries exact name, then name
// containment in either direction on tokens.
func MatchColumn(ds *schema.Dataset, word string) string {
	if word == "" {
		return ""
	}
	if ds.HasColumn(word) {
		return word
	}
	lower := strings.ToLower(word)
	for _, col := range ds.Columns {
		if strings.Contains(strings.ToLower(col.Name), lower) {
			return col.Name
		}
	}
	for _, col := range ds.Columns {
		for _, token := range splitColumnTokens(col.Name) {
			if strings.Contains(lower, token) {
				return col.Name
			}
		}
	}
	return ""
}

// skipDimensionColumn drops short cryptic names from dimension detection,
// keeping a literal "id" column usable.
func skipDimensionColumn(name string) bool {
	return len(name) <= 2 && strings.ToLower(name) != "id"
}

// splitColumnTokens splits a column name on space, underscore and hyphen,
// dropping tokens shorter than 3 characters.
func splitColumnTokens(name string) []string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 3 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
