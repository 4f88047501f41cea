package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/esoadamo/sqlitedb/internal/adapters/driven/storage/sqlite"
	"github.com/esoadamo/sqlitedb/internal/adapters/driving/mcp"
	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long: `Print the sqlitedb version with the SQLite engine, Go runtime and
MCP server versions it was built with.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

// versionInfo is what the version command reports.
type versionInfo struct {
	Version string `json:"version"`
	SQLite  string `json:"sqlite"`
	Go      string `json:"go"`
	MCP     string `json:"mcp"`
}

func init() {
	versionCmd.Flags().Bool("json", false, "print as JSON")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := versionInfo{
		Version: version,
		SQLite:  engineVersion(cmd.Context()),
		Go:      runtime.Version(),
		MCP:     mcp.Version,
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}
	if asJSON {
		return printJSON(cmd.OutOrStdout(), info)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sqlitedb version %s\n", info.Version)
	fmt.Fprintf(out, "  sqlite %s\n", info.SQLite)
	fmt.Fprintf(out, "  go     %s\n", info.Go)
	fmt.Fprintf(out, "  mcp    %s\n", info.MCP)
	return nil
}

// engineVersion asks a throwaway in-memory engine for the linked SQLite version.
func engineVersion(ctx context.Context) string {
	engine, err := sqlite.OpenEngine(ctx, domain.MemoryPath)
	if err != nil {
		return "unknown"
	}
	defer engine.Close()

	rows, err := engine.Execute(ctx, "SELECT sqlite_version()")
	if err != nil || len(rows) == 0 || len(rows[0]) == 0 {
		return "unknown"
	}
	return fmt.Sprint(rows[0][0])
}
