// Package cli implements the sqlitedb command-line interface using cobra.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esoadamo/sqlitedb"
	"github.com/esoadamo/sqlitedb/internal/adapters/driven/config/file"
	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driving"
	"github.com/esoadamo/sqlitedb/internal/core/services"
	"github.com/esoadamo/sqlitedb/internal/logger"
)

// version is reported by the version command; overridden at build time.
var version = "dev"

// Global flags.
var (
	dbPath     string
	configPath string
	verbose    bool
)

// annotationStore marks commands that need an open database.
const annotationStore = "sqlitedb/store"

var storeAnnotation = map[string]string{annotationStore: "true"}

// kvService is what the store commands act on. It is opened before such a
// command runs unless already set, which tests use to inject a mock.
var (
	kvService    driving.KeyValueService
	closeService func() error
)

var rootCmd = &cobra.Command{
	Use:   "sqlitedb",
	Short: "Namespaced key-value storage in a single SQLite file",
	Long: `sqlitedb inspects and edits the namespaces of a sqlitedb database.

Each namespace is a table named db_<namespace> holding unique keys and their
values. Strings are stored verbatim; other values are stored as JSON or, for
types JSON cannot represent, as an opaque encoding.

Configuration is read from ~/.sqlitedb/config.toml and SQLITEDB_* environment
variables; --db overrides the database path.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default ~/.sqlitedb/data.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.sqlitedb/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and closes the database afterwards.
// v, when not empty, is reported by the version command.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	defer closeStore()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[annotationStore] != "true" || kvService != nil {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Log.Verbose {
		logger.SetVerbose(true)
	}

	logger.Debug("opening database", "path", cfg.Database.Path)
	m, err := sqlitedb.OpenConfig(cmd.Context(), cfg,
		sqlitedb.WithLogger(logger.Logger()),
		sqlitedb.WithoutAutoQuit())
	if err != nil {
		return err
	}

	kvService = services.NewKeyValueService(m)
	closeService = m.Close
	return nil
}

// loadConfig reads the config file and applies the --db flag.
func loadConfig() (domain.Config, error) {
	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := store.Load()
	if err != nil {
		return domain.Config{}, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

// closeStore closes a database opened by setup.
func closeStore() {
	if closeService == nil {
		return
	}
	if err := closeService(); err != nil {
		logger.Warn("closing database failed", "error", err)
	}
	closeService = nil
	kvService = nil
}

// requireService returns kvService or an error if no database is open.
func requireService() (driving.KeyValueService, error) {
	if kvService == nil {
		return nil, fmt.Errorf("key-value service not configured")
	}
	return kvService, nil
}
