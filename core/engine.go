package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/tabletalk/tabletalk/core/agg"
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/schema"
)

// Engine runs the analytical query pipeline. It holds no turn-to-turn state:
// the conversational context is passed in and a new one handed back, so one
// engine value serves concurrent callers as long as the dataset store is
// reentrant.
type Engine struct {
	store    contract.DatasetStore
	tracer   contract.Tracer
	rowLimit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracer injects a tracer for engine decision points.
func WithTracer(t contract.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithRowLimit caps dataset fetches below the default.
func WithRowLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 && n <= schema.MaxFetchRows {
			e.rowLimit = n
		}
	}
}

// New builds an Engine around a dataset store.
func New(store contract.DatasetStore, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		tracer:   contract.NopTracer(),
		rowLimit: schema.MaxFetchRows,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Options carry per-call rendering hints.
type Options struct {
	FullView   bool     // Disable Top-N bucketing
	Breakdowns []string // Secondary dimensions for multi-series pivoting
	Normalize  bool     // Rescale pivoted series to 100%-stacked form
}

// Analyze answers a free-text question over a named data source, carrying an
// optional prior-turn context. It returns nil (with a nil error) whenever
// the question is not analytical, the dataset cannot be fetched, or a
// structurally required entity cannot be resolved; recovery belongs to the
// caller. Control flow is strictly linear, no stage retries or loops back.
func (e *Engine) Analyze(ctx context.Context, query, dataSourceID string, prior *schema.QueryContext) (*schema.AnalyticalResponse, error) {
	return e.AnalyzeWithOptions(ctx, query, dataSourceID, prior, Options{})
}

// AnalyzeWithOptions is Analyze with explicit rendering hints.
func (e *Engine) AnalyzeWithOptions(ctx context.Context, query, dataSourceID string, prior *schema.QueryContext, opts Options) (*schema.AnalyticalResponse, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || !IsAnalytical(q) {
		e.tracer.Event("intent", "not analytical: %q", query)
		return nil, nil
	}
	if dataSourceID == "" {
		e.tracer.Event("fetch", "no data source given")
		return nil, nil
	}

	ds, id := e.fetchDataset(ctx, dataSourceID)
	if ds == nil || ds.Len() == 0 {
		return nil, nil
	}

	ents := ResolveEntities(q, ds, e.tracer)
	ents = MergeContext(ents, prior, q, e.tracer)

	metricCol := MatchColumn(ds, ents.Metric)
	dimCol := MatchColumn(ds, ents.Dimension)
	if ents.Metric != "" && metricCol == "" {
		e.tracer.Event("assemble", "metric %q has no matching column", ents.Metric)
	}
	if ents.Dimension != "" && dimCol == "" {
		e.tracer.Event("assemble", "dimension %q has no matching column", ents.Dimension)
	}

	next := &schema.QueryContext{
		Metric:      coalesce(metricCol, ents.Metric),
		Dimension:   coalesce(dimCol, ents.Dimension),
		ChartType:   ents.ChartType,
		Aggregation: ents.Aggregation,
	}

	// List mode: bare enumeration of a dimension, no chart, no distinct
	// metric.
	if dimCol != "" && wordIn(q, "list") && ents.ChartType == "" &&
		(metricCol == "" || metricCol == dimCol) {
		return e.listResponse(ds, dimCol, ents, next, id), nil
	}

	rows := ApplyFilters(ds.Rows, ents.Filters)
	e.tracer.Event("filter", "%d of %d rows after filters", len(rows), ds.Len())
	if len(rows) == 0 {
		return &schema.AnalyticalResponse{
			Answer:       NarrateEmptyFilter(ents.Filters),
			Context:      next,
			DataSourceID: id,
		}, nil
	}

	// Count is the only aggregation that works without a metric column.
	if ents.Aggregation != schema.CountAgg && metricCol == "" {
		e.tracer.Event("assemble", "aggregation %q requires a metric", ents.Aggregation)
		return nil, nil
	}

	// Auto-dimension fallback: a financial metric or an explicit chart
	// request deserves a grouped result even when no dimension was named.
	if metricCol != "" && dimCol == "" && (LooksFinancial(metricCol) || ents.ChartType != "") {
		dimCol = AutoDimension(ds)
		e.tracer.Event("assemble", "auto-selected dimension %q", dimCol)
		if dimCol == "" && ents.ChartType != "" {
			return nil, nil
		}
		next.Dimension = dimCol
	}

	if dimCol == "" {
		return e.scalarResponse(q, rows, metricCol, ents, next, id), nil
	}
	return e.groupedResponse(q, rows, metricCol, dimCol, ents, next, id, opts), nil
}

// fetchDataset resolves and loads a data source, degrading every failure to
// an absent dataset rather than an error.
func (e *Engine) fetchDataset(ctx context.Context, name string) (*schema.Dataset, string) {
	id, err := e.store.Resolve(ctx, name)
	if err != nil || id == "" {
		e.tracer.Event("fetch", "could not resolve data source %q: %v", name, err)
		return nil, ""
	}
	ds, err := e.store.Fetch(ctx, id, e.rowLimit)
	if err != nil {
		e.tracer.Event("fetch", "fetch of %q failed: %v", id, err)
		return nil, ""
	}
	if ds == nil || ds.Len() == 0 {
		e.tracer.Event("fetch", "dataset %q is empty", id)
		return nil, id
	}
	e.tracer.Event("fetch", "dataset %q: %d rows, %d columns", id, ds.Len(), len(ds.Columns))
	return ds, id
}

func (e *Engine) listResponse(ds *schema.Dataset, dimCol string, ents schema.Entities, next *schema.QueryContext, id string) *schema.AnalyticalResponse {
	rows := ApplyFilters(ds.Rows, ents.Filters)
	if len(rows) == 0 {
		return &schema.AnalyticalResponse{
			Answer:       NarrateEmptyFilter(ents.Filters),
			Context:      next,
			DataSourceID: id,
		}
	}
	values := agg.DistinctValues(rows, dimCol)
	e.tracer.Event("assemble", "list mode: %d distinct %q values", len(values), dimCol)
	return &schema.AnalyticalResponse{
		Answer:       NarrateList(dimCol, values),
		Context:      next,
		DataSourceID: id,
	}
}

func (e *Engine) scalarResponse(q string, rows []schema.Row, metricCol string, ents schema.Entities, next *schema.QueryContext, id string) *schema.AnalyticalResponse {
	value := agg.Scalar(rows, metricCol, ents.Aggregation)
	e.tracer.Event("aggregate", "scalar %s(%s) over %d rows", ents.Aggregation, metricCol, len(rows))
	return &schema.AnalyticalResponse{
		Answer:       NarrateScalar(q, ents.Aggregation, metricCol, value),
		Context:      next,
		DataSourceID: id,
	}
}

func (e *Engine) groupedResponse(q string, rows []schema.Row, metricCol, dimCol string, ents schema.Entities, next *schema.QueryContext, id string, opts Options) *schema.AnalyticalResponse {
	result := agg.Grouped(rows, dimCol, metricCol, ents.Aggregation)
	result = agg.BucketTopN(result, opts.FullView)
	result = agg.SortRows(result, dimCol, ents.ChartType)
	e.tracer.Event("aggregate", "grouped %s(%s) by %s: %d buckets", ents.Aggregation, metricCol, dimCol, len(result))

	chartType := ents.ChartType
	priority := PriorityExplicit
	if chartType == "" {
		chartType = schema.BarChart
		priority = PriorityRecommended
	}

	var chart *schema.ChartSpec
	if len(opts.Breakdowns) > 0 {
		pivot := agg.PivotRows(rows, dimCol, opts.Breakdowns, metricCol, ents.Aggregation)
		if opts.Normalize {
			pivot = agg.Normalize(pivot)
		}
		chart = BuildPivotChartSpec(chartType, dimCol, metricCol, priority, pivot)
	} else {
		chart = BuildChartSpec(chartType, dimCol, metricCol, priority, result)
	}

	resp := &schema.AnalyticalResponse{
		Answer:       NarrateGrouped(q, ents.Aggregation, metricCol, dimCol, result),
		Chart:        chart,
		Context:      next,
		DataSourceID: id,
	}
	if chart != nil {
		resp.ChartType = chartType
		subject := titleCase(metricCol)
		if metricCol == "" {
			subject = "Records"
		}
		resp.ChartTitle = fmt.Sprintf("%s %s by %s", schema.AggregationLabel(ents.Aggregation), subject, titleCase(dimCol))
	}
	return resp
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
