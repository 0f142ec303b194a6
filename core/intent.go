// Package core implements the natural-language analytical query pipeline:
// intent classification, entity resolution, context merging, filtering,
// aggregation, narration and response assembly.
package core

import "strings"

// analyticalKeywords gate the pipeline: a query must contain at least one of
// these (or a chart-type trigger) to be treated as analytical. A false
// negative is the expected failure mode for out-of-domain chat; the caller
// falls back to a different answer path.
var analyticalKeywords = []string{
	"trend", "compare", "comparison", "distribution", "breakdown",
	"chart", "graph", "plot", "show",
	"sum", "total", "average", "avg", "mean", "median", "mode",
	"count", "how many", "number of",
	"top", "highest", "lowest", "bottom", "min", "max",
	"list",
}

// IsAnalytical reports whether a lower-cased query looks like an analytical
// question at all. Membership test only, no side effects.
func IsAnalytical(query string) bool {
	for _, kw := range analyticalKeywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	for _, rule := range chartTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(query, kw) {
				return true
			}
		}
	}
	return false
}
