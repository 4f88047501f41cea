package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// EnvPrefix is prepended to every environment override, e.g. SQLITEDB_DATABASE_PATH.
const EnvPrefix = "SQLITEDB_"

const (
	dirName        = ".sqlitedb"
	configFileName = "config.toml"
	dbFileName     = "data.db"
)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Values from the file override defaults; environment variables override both.
type ConfigStore struct {
	filePath string
}

// NewConfigStore creates a TOML-based config store reading filePath.
// If filePath is empty, defaults to ~/.sqlitedb/config.toml.
func NewConfigStore(filePath string) (*ConfigStore, error) {
	if filePath == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		filePath = filepath.Join(dir, configFileName)
	}
	return &ConfigStore{filePath: filePath}, nil
}

// DefaultDir returns ~/.sqlitedb.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads the configuration file and applies environment overrides.
// An empty database path resolves to data.db next to the configuration file.
func (s *ConfigStore) Load() (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", s.filePath, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", s.filePath, err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(filepath.Dir(s.filePath), dbFileName)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", s.filePath, err)
	}
	return cfg, nil
}

// Save writes cfg to the configuration file, creating its directory if needed.
func (s *ConfigStore) Save(cfg domain.Config) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", s.filePath, err)
	}
	return nil
}

// ApplyEnv overrides cfg with SQLITEDB_* environment variables.
func ApplyEnv(cfg *domain.Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
