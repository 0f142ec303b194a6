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

// WriteResponse prints an analytical response, dispatching on the configured
// output format.
func (ow *OutWriter) WriteResponse(resp *schema.AnalyticalResponse, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResponseJSON(w, resp)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResponseCSV(w, resp, cfg)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResponseText(w, resp, cfg, duration)
		}, "Wrote text")
	}
}

func writeResponseJSON(w io.Writer, resp *schema.AnalyticalResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// writeResponseCSV emits the chart series data as rows, one line per
// category with one column per series.
func writeResponseCSV(w io.Writer, resp *schema.AnalyticalResponse, cfg *contract.Config) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if resp.Chart == nil {
		return csvWriter.Write([]string{"answer", resp.Answer})
	}

	header := []string{resp.Chart.DimensionColumn}
	for _, s := range resp.Chart.Series {
		header = append(header, s.Name)
	}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	for i, category := range resp.Chart.Categories {
		record := []string{category}
		for _, s := range resp.Chart.Series {
			record = append(record, strconv.FormatFloat(s.Data[i], 'f', cfg.Precision, 64))
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeResponseText(w io.Writer, resp *schema.AnalyticalResponse, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintln(w, contract.RenderEmphasis(resp.Answer, cfg.Color)); err != nil {
		return err
	}

	if resp.Chart != nil {
		if err := writeSeriesTable(w, resp.Chart, cfg); err != nil {
			return err
		}
		label := "Suggested chart:"
		if cfg.Color {
			label = contract.HeaderColor.Sprint(label)
		}
		if _, err := fmt.Fprintf(w, "%s %s (%s)\n", label, resp.ChartType, resp.ChartTitle); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Answered in %v\n", duration.Round(time.Millisecond))
	return err
}

// writeSeriesTable renders the aggregated series as a terminal table.
func writeSeriesTable(w io.Writer, chart *schema.ChartSpec, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)

	dimWidth := terminalWidth(cfg) / 3
	headers := []string{chart.DimensionColumn}
	for _, s := range chart.Series {
		headers = append(headers, s.Name)
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, category := range chart.Categories {
		row := []string{truncate(category, dimWidth)}
		for _, s := range chart.Series {
			row = append(row, strconv.FormatFloat(s.Data[i], 'f', cfg.Precision, 64))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteDatasets lists resolvable dataset names.
func (ow *OutWriter) WriteDatasets(names []string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(names)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if len(names) == 0 {
				_, err := fmt.Fprintln(w, "No datasets found.")
				return err
			}
			for _, n := range names {
				if _, err := fmt.Fprintln(w, n); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(w, "%d dataset(s)\n", len(names))
			return err
		}, "Wrote text")
	}
}
