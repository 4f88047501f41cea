package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// dirMode is the permission used when creating the database directory.
const dirMode os.FileMode = 0o770

// Engine is a single native SQLite connection.
// Statements run inside a transaction that is opened lazily and closed by Commit.
// Engine is not thread-safe; it is owned by the worker goroutine.
type Engine struct {
	db   *sql.DB
	conn *sql.Conn
	tx   *sql.Tx
	path string
}

var _ driven.Engine = (*Engine)(nil)

// OpenEngine opens the database at path, creating its directory if needed.
// domain.MemoryPath opens a non-persistent in-memory database.
func OpenEngine(ctx context.Context, path string) (*Engine, error) {
	dsn := domain.MemoryPath
	if path != domain.MemoryPath {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving database path: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(abs), dirMode); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		path = abs
		dsn = abs + "?_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: an in-memory database lives and dies with it.
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}

	return &Engine{db: db, conn: conn, path: path}, nil
}

// Opener returns a driven.EngineOpener for path.
func Opener(path string) driven.EngineOpener {
	return func(ctx context.Context) (driven.Engine, error) {
		return OpenEngine(ctx, path)
	}
}

// Path returns the absolute database path, or domain.MemoryPath.
func (e *Engine) Path() string {
	return e.path
}

// Execute runs query inside the current transaction.
// Every statement goes through QueryContext; those producing no rows yield an empty slice.
func (e *Engine) Execute(ctx context.Context, query string, args ...any) ([]domain.Row, error) {
	if e.tx == nil {
		tx, err := e.conn.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("beginning transaction: %w", err)
		}
		e.tx = tx
	}

	rows, err := e.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// Commit commits the current transaction, if any.
func (e *Engine) Commit(_ context.Context) error {
	if e.tx == nil {
		return nil
	}
	tx := e.tx
	e.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close rolls back any uncommitted transaction and releases the connection.
func (e *Engine) Close() error {
	if e.tx != nil {
		_ = e.tx.Rollback()
		e.tx = nil
	}
	if err := e.conn.Close(); err != nil {
		e.db.Close()
		return fmt.Errorf("closing connection: %w", err)
	}
	return e.db.Close()
}

// scanRows reads every row into generic tuples.
func scanRows(rows *sql.Rows) ([]domain.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	result := []domain.Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, domain.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
