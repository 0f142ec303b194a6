package schema

// Custom string types for type safety.
type (
	// ColumnType classifies a dataset column.
	ColumnType string

	// ChartType identifies a supported chart rendering style.
	ChartType string

	// Aggregation identifies a supported aggregation function.
	Aggregation string

	// OutputMode represents the format of CLI output.
	OutputMode string

	// DatabaseBackend represents the database backend for the query log.
	DatabaseBackend string
)

// All column types supported.
const (
	TypeNumber ColumnType = "number"
	TypeString ColumnType = "string"
	TypeDate   ColumnType = "date"
	TypeBool   ColumnType = "bool"
)

// Generic chart types. These are matched after the special types during
// chart-type detection.
const (
	BarChart  ChartType = "bar"
	LineChart ChartType = "line"
	PieChart  ChartType = "pie"
	AreaChart ChartType = "area"
)

// Special chart types. These carry distinctive trigger words and are matched
// before the generic types during chart-type detection.
const (
	FunnelChart     ChartType = "funnel"
	GaugeChart      ChartType = "gauge"
	RadarChart      ChartType = "radar"
	ScatterChart    ChartType = "scatter"
	HeatmapChart    ChartType = "heatmap"
	TreemapChart    ChartType = "treemap"
	SunburstChart   ChartType = "sunburst"
	SankeyChart     ChartType = "sankey"
	WaterfallChart  ChartType = "waterfall"
	ThemeRiverChart ChartType = "themeRiver"
	PolarChart      ChartType = "polar"
	PictorialChart  ChartType = "pictorialBar"
)

// All aggregation functions supported.
const (
	SumAgg    Aggregation = "sum" // default
	AvgAgg    Aggregation = "avg"
	CountAgg  Aggregation = "count"
	MinAgg    Aggregation = "min"
	MaxAgg    Aggregation = "max"
	MedianAgg Aggregation = "median"
	ModeAgg   Aggregation = "mode"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All query-log backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Engine limits.
const (
	// MaxFetchRows caps how many rows a dataset fetch may return.
	MaxFetchRows = 2000

	// TopNBuckets is how many categories survive bucketing before the
	// remainder collapses into the Others bucket.
	TopNBuckets = 10

	// MaxListValues caps how many distinct values a list answer enumerates.
	MaxListValues = 20

	// UnknownLabel stands in for nil or blank dimension values.
	UnknownLabel = "Unknown"

	// OthersLabel names the synthetic long-tail bucket.
	OthersLabel = "Others"
)

// AllChartTypes lists every supported chart type, special types first to
// mirror detection priority.
var AllChartTypes = []ChartType{
	FunnelChart, GaugeChart, RadarChart, ScatterChart, HeatmapChart,
	TreemapChart, SunburstChart, SankeyChart, WaterfallChart,
	ThemeRiverChart, PolarChart, PictorialChart,
	AreaChart, LineChart, PieChart, BarChart,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidHistoryBackends lists all valid query-log backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AggregationLabel returns the display label the narrator uses for an
// aggregation function.
func AggregationLabel(agg Aggregation) string {
	switch agg {
	case AvgAgg:
		return "Average"
	case CountAgg:
		return "Count of"
	case MaxAgg:
		return "Top"
	case MinAgg:
		return "Lowest"
	case MedianAgg:
		return "Median"
	case ModeAgg:
		return "Most Common"
	default:
		return "Total"
	}
}
