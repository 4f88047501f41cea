package driven

import (
	"context"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

// Executor runs statements against the shared database.
// Implementations must be thread-safe.
type Executor interface {
	// Execute runs a parameterized statement and returns its rows.
	Execute(ctx context.Context, query string, args ...any) ([]domain.Row, error)

	// Commit flushes pending writes to the backing file.
	Commit(ctx context.Context) (bool, error)
}

// Database is the full surface of the synchronized database.
type Database interface {
	Executor

	// JSON runs query and labels each row with the column names of table.
	// The query must project columns in the table's declared order.
	JSON(ctx context.Context, query, table string, args ...any) ([]map[string]any, error)

	// Quit stops the worker. It is idempotent and never fails.
	Quit() bool

	// Path returns the database file path, or domain.MemoryPath.
	Path() string
}
