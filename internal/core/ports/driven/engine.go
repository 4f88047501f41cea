package driven

import (
	"context"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

// Engine is the native database connection.
// Implementations need not be thread-safe: the worker owns the engine
// exclusively and never calls it from more than one goroutine.
type Engine interface {
	// Execute runs a parameterized statement and returns its rows.
	// Statements that produce no rows return an empty slice.
	Execute(ctx context.Context, query string, args ...any) ([]domain.Row, error)

	// Commit flushes pending writes to the backing file.
	Commit(ctx context.Context) error

	// Close releases the connection without committing.
	Close() error
}

// EngineOpener creates the Engine on the worker goroutine.
type EngineOpener func(ctx context.Context) (Engine, error)
