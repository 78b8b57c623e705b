package cmd

import (
	"github.com/huangsam/gitfolio/internal/mcp"
	"github.com/huangsam/gitfolio/schema"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [source]",
	Short: "Start the gitfolio MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents profile repositories
through the profile_contributors tool. The command's flags become the defaults
for every tool call.`,
	Args: cobra.MaximumNArgs(1),
	// Stdout carries the protocol, so the profile header stays on stderr.
	PreRunE: setupFor(schema.ProfileView),
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
