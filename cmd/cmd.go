// Package cmd defines the command-line interface for tabletalk.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("data-dir", "d", ".", "Directory containing CSV/XLSX dataset files")
	rootCmd.PersistentFlags().String("dataset", "", "Dataset name to query (e.g. 'sales' or 'sales.csv')")
	rootCmd.PersistentFlags().IntP("row-limit", "l", contract.DefaultRowLimit, "Maximum rows to read per dataset")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("full-view", false, "Show all groups instead of the top buckets plus Others")
	rootCmd.PersistentFlags().String("by", "", "Comma-separated secondary dimensions for pivoted breakdowns")
	rootCmd.PersistentFlags().Bool("normalize", false, "Rescale pivoted breakdowns so each category sums to 100 (100%-stacked)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Query-log backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql query logs")
	rootCmd.PersistentFlags().Bool("trace", false, "Print engine resolution steps to stderr")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored answers in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyShowCmd to Viper
	historyShowCmd.Flags().Int("last", defaultHistoryLimit, "Number of recent queries to display")
	if err := viper.BindPFlags(historyShowCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history show flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
