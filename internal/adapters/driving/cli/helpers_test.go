package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := Execute(context.Background(), "")
	return buf.String(), err
}

// tempDB returns flags pointing at a fresh database and config file.
func tempDB(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		"--db", filepath.Join(dir, "data.db"),
		"--config", filepath.Join(dir, "config.toml"),
	}
}

// withService injects svc for the duration of the test.
func withService(t *testing.T, svc *mockKeyValueService) {
	t.Helper()
	old := kvService
	kvService = svc
	t.Cleanup(func() { kvService = old })
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
