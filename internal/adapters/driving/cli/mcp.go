package cli

import (
	"github.com/spf13/cobra"

	"github.com/esoadamo/sqlitedb/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC and exposes tools to list
namespaces and keys and to get, set and delete values.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "sqlitedb": {
        "command": "/path/to/sqlitedb",
        "args": ["--db", "/path/to/data.db", "mcp", "serve"]
      }
    }
  }`,
	Args:        cobra.NoArgs,
	Annotations: storeAnnotation,
	RunE:        runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	svc, err := requireService()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{KeyValue: svc})
	if err != nil {
		return err
	}
	return server.Run(cmd.Context())
}
