package core

import (
	"strings"

	"github.com/tabletalk/tabletalk/schema"
)

// chartRule pairs trigger words with the chart type they select. Rules are
// evaluated in order and the first match wins, so the special chart types
// sit above the generic ones: "show the sales funnel" must hit funnel before
// the generic "show" trigger can claim it for bar.
type chartRule struct {
	keywords []string
	chart    schema.ChartType
}

var chartTypeRules = []chartRule{
	// Special types first.
	{[]string{"funnel"}, schema.FunnelChart},
	{[]string{"gauge", "dial"}, schema.GaugeChart},
	{[]string{"radar", "spider"}, schema.RadarChart},
	{[]string{"scatter", "correlation"}, schema.ScatterChart},
	{[]string{"heatmap", "heat map"}, schema.HeatmapChart},
	{[]string{"treemap", "tree map"}, schema.TreemapChart},
	{[]string{"sunburst"}, schema.SunburstChart},
	{[]string{"sankey", "flow diagram"}, schema.SankeyChart},
	{[]string{"waterfall"}, schema.WaterfallChart},
	{[]string{"theme river", "themeriver", "stream graph"}, schema.ThemeRiverChart},
	{[]string{"polar"}, schema.PolarChart},
	{[]string{"pictorial"}, schema.PictorialChart},
	// Generic types after.
	{[]string{"area"}, schema.AreaChart},
	{[]string{"line", "trend", "over time"}, schema.LineChart},
	{[]string{"pie", "distribution", "share of", "proportion"}, schema.PieChart},
	{[]string{"bar", "chart", "graph", "plot", "compare", "show"}, schema.BarChart},
}

// DetectChartType walks the ordered rule table and returns the first chart
// type whose trigger appears in the query, or "" when none match.
func DetectChartType(query string) schema.ChartType {
	for _, rule := range chartTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(query, kw) {
				return rule.chart
			}
		}
	}
	return ""
}

// aggRule pairs trigger words with an aggregation function, again evaluated
// in order with first match winning.
type aggRule struct {
	keywords []string
	agg      schema.Aggregation
}

var aggregationRules = []aggRule{
	{[]string{"average", "avg", "mean"}, schema.AvgAgg},
	{[]string{"median"}, schema.MedianAgg},
	{[]string{"mode", "most common", "most frequent"}, schema.ModeAgg},
	{[]string{"count", "how many", "number of"}, schema.CountAgg},
	{[]string{"min", "lowest", "bottom", "smallest"}, schema.MinAgg},
	{[]string{"max", "highest", "top", "peak", "largest"}, schema.MaxAgg},
}

// DetectAggregation returns the aggregation the query asks for, defaulting
// to sum when nothing matches.
func DetectAggregation(query string) schema.Aggregation {
	for _, rule := range aggregationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(query, kw) {
				return rule.agg
			}
		}
	}
	return schema.SumAgg
}
