package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/internal/outwriter"
)

// datasetsCmd lists the loadable dataset files.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the dataset files available in the data directory.",
	Long: `List every CSV and XLSX file the data directory can serve.

Names shown here are what 'ask' and 'chat' resolve against. Questions can
reference them loosely: "sales report" matches sales_report.csv via
underscore, hyphen and case-insensitive fallbacks.

Examples:
  tabletalk datasets
  tabletalk datasets -d ./data --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		names, err := datasetStore.List(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot list datasets", err)
		}
		if err := outwriter.NewOutWriter().WriteDatasets(names, cfg); err != nil {
			contract.LogFatal("Cannot write dataset listing", err)
		}
	},
}
