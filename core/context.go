package core

import (
	"strings"

	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/schema"
)

// MergeContext reconciles freshly extracted entities with the prior turn's
// context so elliptical follow-ups ("sort descending", "as a pie chart")
// keep working. The prior context is caller-owned and never mutated.
func MergeContext(ents schema.Entities, prior *schema.QueryContext, query string, tracer contract.Tracer) schema.Entities {
	if prior != nil {
		switch {
		case ents.Dimension != "" && ents.Metric == "":
			ents.Metric = prior.Metric
			tracer.Event("context", "inherited metric %q", prior.Metric)
		case ents.Metric != "" && ents.Dimension == "":
			ents.Dimension = prior.Dimension
			tracer.Event("context", "inherited dimension %q", prior.Dimension)
		case ents.Metric == "" && ents.Dimension == "":
			ents.Metric = prior.Metric
			ents.Dimension = prior.Dimension
			if ents.ChartType == "" {
				ents.ChartType = prior.ChartType
			}
			tracer.Event("context", "pure follow-up, inherited metric %q and dimension %q", prior.Metric, prior.Dimension)
		}

		// Don't silently reset an earlier "average ..." back to sum, but a
		// sticky count would swallow every later sum question.
		if ents.Aggregation == schema.SumAgg &&
			prior.Aggregation != "" &&
			prior.Aggregation != schema.SumAgg &&
			prior.Aggregation != schema.CountAgg {
			ents.Aggregation = prior.Aggregation
			tracer.Event("context", "inherited aggregation %q", prior.Aggregation)
		}
	}

	// Conflict resolution: the same column resolved both ways (for example
	// "Average Time"). Grouping language keeps the dimension; otherwise the
	// query is treated as a scalar over the metric.
	if ents.Metric != "" && ents.Metric == ents.Dimension {
		if wordIn(query, "by") || wordIn(query, "list") || ents.ChartType != "" {
			ents.Metric = ""
			tracer.Event("context", "metric/dimension collision, kept dimension %q", ents.Dimension)
		} else {
			ents.Dimension = ""
			tracer.Event("context", "metric/dimension collision, kept metric %q", ents.Metric)
		}
	}

	// Aggregation refinement: bare listing requests default to counting,
	// not summing, unless the query spells out total/sum.
	if ents.Aggregation == schema.SumAgg &&
		(wordIn(query, "list") || ents.Metric == "") &&
		!strings.Contains(query, "total") &&
		!strings.Contains(query, "sum") {
		ents.Aggregation = schema.CountAgg
		tracer.Event("context", "refined default aggregation to count")
	}

	return ents
}

// wordIn matches a whole word in the query, so "by" cannot fire inside
// "nearby".
func wordIn(query, word string) bool {
	for _, f := range strings.FieldsFunc(query, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if f == word {
			return true
		}
	}
	return false
}
