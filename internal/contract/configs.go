package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/tabletalk/tabletalk/schema"
)

// Default configuration values.
const (
	DefaultRowLimit  = schema.MaxFetchRows
	DefaultPrecision = 2
)

// Config holds the validated runtime configuration shared by all commands.
type Config struct {
	DataDir          string                 // Directory holding CSV/XLSX datasets
	Dataset          string                 // Data source name to query
	RowLimit         int                    // Max rows fetched per dataset
	Output           schema.OutputMode      // Output format: text, json, csv
	OutputFile       string                 // Optional path to write output directly
	FullView         bool                   // Disable Top-N bucketing when true
	Breakdowns       []string               // Secondary breakdown dimensions for pivoting
	Normalize        bool                   // Rescale pivoted series to 100%-stacked form
	Precision        int                    // Decimal precision for numeric output (1 or 2)
	HistoryBackend   schema.DatabaseBackend // Query-log backend
	HistoryDBConnect string                 // Query-log connection string
	Trace            bool                   // Emit engine trace events to stderr
	Color            bool                   // Colorize terminal output
	Width            int                    // Terminal width override (0 = detect)
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	DataDir          string `mapstructure:"data-dir"`
	Dataset          string `mapstructure:"dataset"`
	RowLimit         int    `mapstructure:"row-limit"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	FullView         bool   `mapstructure:"full-view"`
	Breakdowns       string `mapstructure:"by"`
	Normalize        bool   `mapstructure:"normalize"`
	Precision        int    `mapstructure:"precision"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Trace            bool   `mapstructure:"trace"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
}

// ProcessAndValidate turns raw input into a validated Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if info, err := os.Stat(cfg.DataDir); err != nil || !info.IsDir() {
		return fmt.Errorf("data directory %q is not accessible", cfg.DataDir)
	}

	cfg.Dataset = input.Dataset

	cfg.RowLimit = input.RowLimit
	if cfg.RowLimit <= 0 || cfg.RowLimit > schema.MaxFetchRows {
		cfg.RowLimit = schema.MaxFetchRows
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode %q (want text, json or csv)", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.FullView = input.FullView
	cfg.Breakdowns = splitCommaList(input.Breakdowns)
	cfg.Normalize = input.Normalize

	cfg.Precision = input.Precision
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	if cfg.Precision > 2 {
		cfg.Precision = 2
	}

	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend %q (want sqlite, mysql, postgresql or none)", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect

	cfg.Trace = input.Trace
	switch strings.ToLower(input.Color) {
	case "no", "false", "0":
		cfg.Color = false
	default:
		cfg.Color = true
	}
	cfg.Width = input.Width

	return nil
}

// Clone returns a copy of the config, used by MCP handlers that override
// per-request fields without mutating the shared base.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Breakdowns = append([]string(nil), c.Breakdowns...)
	return &clone
}

func splitCommaList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
