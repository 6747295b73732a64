package cmd

import (
	"github.com/spf13/cobra"

	"github.com/migcheck/migcheck/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the migcheck MCP server",
	Long:  `Launch an MCP server that allows AI agents to run migration diagnostics and inspect run history via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; the report rendering
		// happens inside tool responses, not on the console.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
