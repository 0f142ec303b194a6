package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/schema"
)

// WriteHistory prints past queries using the configured output format.
func (ow *OutWriter) WriteHistory(entries []schema.HistoryEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryCSV(w, entries)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, entries, cfg)
		}, "Wrote text")
	}
}

func writeHistoryTable(w io.Writer, entries []schema.HistoryEntry, cfg *contract.Config) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No queries recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Asked", "Question", "Dataset", "Aggregation", "Answered"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	questionWidth := terminalWidth(cfg) / 2
	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			e.AskedAt.Format(time.DateTime),
			truncate(e.Query, questionWidth),
			e.DatasetID,
			e.Aggregation,
			strconv.FormatBool(e.Answered),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d recent queries\n", len(entries))
	return err
}

func writeHistoryCSV(w io.Writer, entries []schema.HistoryEntry) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := []string{
		"id",
		"conversation_id",
		"asked_at",
		"question",
		"dataset_id",
		"metric",
		"dimension",
		"aggregation",
		"chart_type",
		"answered",
		"answer",
		"duration_ms",
	}
	if err := csvWriter.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.ID,
			e.ConversationID,
			e.AskedAt.Format(time.RFC3339),
			e.Query,
			e.DatasetID,
			e.Metric,
			e.Dimension,
			e.Aggregation,
			e.ChartType,
			strconv.FormatBool(e.Answered),
			e.Answer,
			strconv.FormatInt(e.DurationMs, 10),
		}
		if err := csvWriter.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
