package core

import (
	"github.com/tabletalk/tabletalk/core/agg"
	"github.com/tabletalk/tabletalk/schema"
)

// Chart recommendation priorities for the renderer contract.
const (
	// PriorityExplicit marks a chart the user asked for by name.
	PriorityExplicit = 1
	// PriorityRecommended marks a chart the engine suggests for a grouped
	// result without an explicit request.
	PriorityRecommended = 2
)

// BuildChartSpec packages an aggregated result into the renderer contract.
// The renderer's styling is outside the engine; this stops at chart type,
// axis columns and series data.
func BuildChartSpec(chartType schema.ChartType, dimension, metric string, priority int, rows []schema.AggRow) *schema.ChartSpec {
	if len(rows) == 0 {
		return nil
	}

	categories := make([]string, len(rows))
	data := make([]float64, len(rows))
	for i, r := range rows {
		categories[i] = r.Dimension
		data[i] = r.Value
	}

	name := metric
	if name == "" {
		name = "Count"
	}

	return &schema.ChartSpec{
		ChartType:       chartType,
		DimensionColumn: dimension,
		MetricColumn:    metric,
		Priority:        priority,
		Categories:      categories,
		Series:          []schema.Series{{Name: name, Data: data}},
	}
}

// BuildPivotChartSpec packages a pivoted multi-series result, one series per
// breakdown value, for stacked and grouped charts.
func BuildPivotChartSpec(chartType schema.ChartType, dimension, metric string, priority int, pivot agg.Pivot) *schema.ChartSpec {
	if len(pivot.Categories) == 0 {
		return nil
	}
	return &schema.ChartSpec{
		ChartType:       chartType,
		DimensionColumn: dimension,
		MetricColumn:    metric,
		Priority:        priority,
		Categories:      pivot.Categories,
		Series:          pivot.Series,
	}
}
