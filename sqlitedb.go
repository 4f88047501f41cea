package sqlitedb

import (
	"context"
	"fmt"

	"github.com/esoadamo/sqlitedb/internal/adapters/driven/cache"
	"github.com/esoadamo/sqlitedb/internal/adapters/driven/codec"
	"github.com/esoadamo/sqlitedb/internal/adapters/driven/codec/gobcodec"
	"github.com/esoadamo/sqlitedb/internal/adapters/driven/storage/sqlite"
	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/services"
)

type (
	// DB is the synchronized database shared by every Store of a Manager.
	DB = sqlite.DB

	// Manager hands out Store handles for the namespaces of one database.
	Manager = services.Manager

	// Store is the key-value view of one namespace.
	Store = services.Store

	// Row is one result tuple of DB.Execute.
	Row = domain.Row

	// Config is the complete runtime configuration.
	Config = domain.Config

	// EngineError wraps a failure reported by SQLite.
	EngineError = domain.EngineError
)

// Memory is the path of a non-persistent in-memory database.
const Memory = domain.MemoryPath

// Errors returned by the package.
var (
	ErrKeyNotFound   = domain.ErrKeyNotFound
	ErrClosed        = domain.ErrClosed
	ErrSerialization = domain.ErrSerialization
	ErrInvalidInput  = domain.ErrInvalidInput
)

// DefaultConfig returns the default configuration with an empty database path.
func DefaultConfig() Config {
	return domain.DefaultConfig()
}

// Register records a named type so values of it can be stored with the gob codec
// and read back with their concrete type. Call it once per type, before use.
func Register(value any) {
	gobcodec.Register(value)
}

// Open opens the database at path with the default configuration adjusted by opts.
// path may be Memory.
func Open(ctx context.Context, path string, opts ...Option) (*Manager, error) {
	cfg := DefaultConfig()
	cfg.Database.Path = path
	return OpenConfig(ctx, cfg, opts...)
}

// OpenConfig opens the database described by cfg, adjusted by opts.
func OpenConfig(ctx context.Context, cfg Config, opts ...Option) (*Manager, error) {
	o := &options{cfg: cfg}
	for _, opt := range opts {
		opt(o)
	}
	cfg = o.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opaque, err := codec.New(cfg.Codec.Opaque)
	if err != nil {
		return nil, err
	}

	policy, err := cache.NewPolicy(cfg.Cache.Eviction)
	if err != nil {
		return nil, err
	}
	handles, err := cache.New[*Store](cfg.Cache.Capacity, policy,
		cache.WithMetrics[*Store](o.registerer, cfg.Database.Path))
	if err != nil {
		return nil, err
	}

	dbOpts := []sqlite.Option{
		sqlite.WithLogger(o.logger),
		sqlite.WithPollInterval(cfg.Poll()),
		sqlite.WithQueueSize(cfg.Database.QueueSize),
		sqlite.WithRegisterer(o.registerer),
	}
	switch {
	case o.autoQuit != nil:
		dbOpts = append(dbOpts, sqlite.WithAutoQuit(o.autoQuit))
	case !cfg.Database.AutoQuit:
		dbOpts = append(dbOpts, sqlite.WithoutAutoQuit())
	}

	db, err := sqlite.Open(ctx, cfg.Database.Path, dbOpts...)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.Database.Path, err)
	}

	return services.NewManager(db, services.NewTriage(opaque), handles, o.logger), nil
}
