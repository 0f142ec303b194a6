package cmd

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tabletalk/tabletalk/core"
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/internal/outwriter"
	"github.com/tabletalk/tabletalk/schema"
)

// chartTypeList renders the supported chart types for help text, in
// detection-priority order.
func chartTypeList() string {
	names := make([]string, len(schema.AllChartTypes))
	for i, c := range schema.AllChartTypes {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// askCmd answers a single analytical question.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one analytical question about a dataset.",
	Long: `Answer a single natural-language question against a CSV or XLSX dataset.

The question is matched against the dataset's columns and values to find:
- The metric column to aggregate (sales, revenue, quantity, ...)
- The dimension column to group by (region, category, month, ...)
- Row filters taken from the question's words (e.g. a product name)
- The aggregation (sum, average, count, median, mode, min, max)
- A suggested chart type when the question implies one

Examples:
  # Scalar answer
  tabletalk ask "total sales" --dataset sales.csv

  # Grouped answer with a chart suggestion
  tabletalk ask "average revenue by region" --dataset sales

  # Pivoted breakdown with a secondary dimension
  tabletalk ask "sales by month" --dataset sales --by region

  # Export the aggregation to CSV
  tabletalk ask "count of orders by category" -d ./data --dataset orders --output csv --output-file out.csv

Supported chart types: ` + chartTypeList(),
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		question := strings.Join(args, " ")
		if err := runAsk(question, uuid.NewString(), nil); err != nil {
			contract.LogFatal("Cannot answer question", err)
		}
	},
}

// runAsk executes one question through the engine, prints the response and
// records the attempt in the query log.
func runAsk(question, conversationID string, prior *schema.QueryContext) error {
	engine := core.New(datasetStore, core.WithTracer(engineTracer()), core.WithRowLimit(cfg.RowLimit))

	start := time.Now()
	resp, err := engine.AnalyzeWithOptions(rootCtx, question, cfg.Dataset, prior, core.Options{
		FullView:   cfg.FullView,
		Breakdowns: cfg.Breakdowns,
		Normalize:  cfg.Normalize,
	})
	duration := time.Since(start)
	if err != nil {
		return err
	}

	recordHistory(question, conversationID, resp, duration)

	if resp == nil {
		contract.LogWarn("The question could not be answered from this dataset.", nil)
		return nil
	}
	return outwriter.NewOutWriter().WriteResponse(resp, cfg, duration)
}

// recordHistory appends the query attempt to the query log. Logging failures
// never block the answer.
func recordHistory(question, conversationID string, resp *schema.AnalyticalResponse, duration time.Duration) {
	entry := schema.HistoryEntry{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		AskedAt:        time.Now().UTC(),
		Query:          question,
		DatasetID:      cfg.Dataset,
		DurationMs:     duration.Milliseconds(),
	}
	if resp != nil {
		entry.DatasetID = resp.DataSourceID
		entry.Answered = true
		entry.Answer = resp.Answer
		entry.ChartType = string(resp.ChartType)
		if resp.Context != nil {
			entry.Metric = resp.Context.Metric
			entry.Dimension = resp.Context.Dimension
			entry.Aggregation = string(resp.Context.Aggregation)
		}
	}
	if err := historyStore.Record(rootCtx, entry); err != nil {
		contract.LogWarn("Could not record query in the log", err)
	}
}
