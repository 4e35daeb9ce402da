package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sprintchart/burndown/internal/mcp"
	"github.com/sprintchart/burndown/internal/snapstore"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the burndown MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents read the stored burndown series and project guidelines.`,
	// Logs go to stderr, so stdio stays reserved for the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, snapstore.Manager.GetSnapshotStore())
	},
}
