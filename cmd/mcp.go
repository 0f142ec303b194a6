package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tabletalk/tabletalk/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the TableTalk MCP server",
	Long:  `Launch an MCP server that lets AI agents ask analytical questions about local datasets via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, datasetStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
