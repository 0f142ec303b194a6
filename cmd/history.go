package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/internal/history"
	"github.com/tabletalk/tabletalk/internal/outwriter"
	"github.com/tabletalk/tabletalk/schema"
)

const defaultHistoryLimit = 20

// historySetup loads minimal configuration needed for query-log operations.
// This avoids the data-directory validation that 'ask' and 'chat' need.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend %q", backendStr)
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = history.DefaultDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.OutputFile = viper.GetString("output-file")
	if cfg.Precision == 0 {
		cfg.Precision = contract.DefaultPrecision
	}

	store, err := history.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open query log: %w", err)
	}
	historyStore = store
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup skips opening the store so migrations can run on a
// fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.SQLiteBackend
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = history.DefaultDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd manages the recorded query log.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the recorded query log",
	Long: `Manage the log of past questions and answers.

Every 'ask' and 'chat' turn is recorded with its resolved metric, dimension,
aggregation and answer. The log is the raw material for judging how well the
column and filter matching heuristics hold up on real questions.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  show    - Display recent queries
  export  - Export the log to Parquet for analytics
  clear   - Remove all recorded queries
  migrate - Run database schema migrations

Examples:
  tabletalk history show --last 50
  tabletalk history export --output-file queries.parquet`,
}

// historyShowCmd displays recent queries.
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display recent queries with their resolution results",
	Long: `Show the most recent recorded queries, newest first.

Each row includes the question, the dataset it ran against, the detected
aggregation and whether an answer was produced.

Examples:
  tabletalk history show
  tabletalk history show --last 50 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		limit := viper.GetInt("last")
		if limit <= 0 {
			limit = defaultHistoryLimit
		}
		entries, err := historyStore.Recent(rootCtx, limit)
		if err != nil {
			contract.LogFatal("Failed to read query log", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(entries, cfg); err != nil {
			contract.LogFatal("Failed to write query log", err)
		}
	},
}

// historyClearCmd clears the query log.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded queries",
	Long: `Delete every recorded question and answer.

WARNING: This action cannot be undone. Consider exporting the log first.

Examples:
  tabletalk history export --output-file backup.parquet
  tabletalk history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := historyStore.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear query log", err)
		}
		fmt.Println("Query log cleared successfully.")
	},
}

// historyExportCmd exports the query log to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the query log to Parquet for BI tools and analytics",
	Long: `Export all recorded queries to Parquet format.

Parquet enables fast querying with DuckDB, Apache Spark and pandas, which is
the intended workflow for reviewing which questions the heuristics answered
and which they missed.

Requires: --output-file parameter

Examples:
  tabletalk history export --output-file queries.parquet
  duckdb -c "SELECT answered, count(*) FROM read_parquet('queries.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Export requires --output-file", errors.New("no output file given"))
		}
		entries, err := historyStore.Recent(rootCtx, schema.MaxFetchRows)
		if err != nil {
			contract.LogFatal("Failed to read query log", err)
		}
		if err := history.ExportParquet(entries, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export query log", err)
		}
		fmt.Printf("Exported %d queries to %s\n", len(entries), cfg.OutputFile)
	},
}

// historyMigrateCmd runs database migrations for the query-log store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the query-log store.

By default, migrates to the latest version. Use --target-version for specific
versions.

Examples:
  tabletalk history migrate
  tabletalk history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
