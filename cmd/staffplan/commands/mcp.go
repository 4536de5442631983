package commands

import (
	"staffplan/internal/mcp"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCP(cmd)
	},
}

func runMCP(cmd *cobra.Command) error {
	server := mcp.NewServer(dash, cfg.EnableMermaidCharts, Version)
	return server.Serve(cmd.Context())
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
