package schema

// Entities holds everything the resolver extracted from a single query.
// A fresh value is created per call and never mutated outside the resolver
// and the context merger.
type Entities struct {
	Metric      string            // Metric column (or vocabulary word), "" if unresolved
	Dimension   string            // Grouping column, "" if unresolved
	ChartType   ChartType         // Requested chart type, "" if none
	Aggregation Aggregation       // Detected aggregation, SumAgg by default
	Filters     map[string]string // Column -> matched substring filters
}

// QueryContext is a snapshot of the previous turn's resolved entities. The
// conversation holder owns it: the engine takes one in and hands a new one
// back, keeping no turn-to-turn state of its own.
type QueryContext struct {
	Metric      string      `json:"metric,omitempty"`
	Dimension   string      `json:"dimension,omitempty"`
	ChartType   ChartType   `json:"chartType,omitempty"`
	Aggregation Aggregation `json:"aggregation,omitempty"`
}

// AggRow is one aggregated result row: a dimension value and its metric value.
type AggRow struct {
	Dimension string  `json:"dimension"`
	Value     float64 `json:"value"`
}

// Series is one named line of values in a pivoted (multi-series) result,
// holding exactly one point per category.
type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// ChartSpec is the contract handed to the chart renderer: which columns feed
// which axes, the requested chart type, plus the aggregated series data. The
// engine never inspects what the renderer builds from it.
type ChartSpec struct {
	ChartType       ChartType `json:"chartType"`
	DimensionColumn string    `json:"dimensionColumn"`
	MetricColumn    string    `json:"metricColumn"`
	Priority        int       `json:"priority"`
	Categories      []string  `json:"categories"`
	Series          []Series  `json:"series"`
}

// AnalyticalResponse is the engine's one-shot, immutable reply.
type AnalyticalResponse struct {
	Answer       string        `json:"answer"`
	Chart        *ChartSpec    `json:"chart,omitempty"`
	ChartTitle   string        `json:"chartTitle,omitempty"`
	ChartType    ChartType     `json:"chartType,omitempty"`
	Context      *QueryContext `json:"context,omitempty"`
	DataSourceID string        `json:"dataSourceId,omitempty"`
}
