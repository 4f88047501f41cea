package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// DB is the synchronized entry point to a database.
// Every call takes the instance lock, enqueues one command for the worker
// and waits for the response carrying the same ID, so at most one command
// is in flight regardless of how many goroutines use the DB.
type DB struct {
	mu     sync.Mutex
	in     chan domain.Command
	out    chan domain.Response
	done   chan struct{}
	path   string
	logger *slog.Logger
}

var _ driven.Database = (*DB)(nil)

// Open starts a worker owning a SQLite connection to path.
// path may be domain.MemoryPath for a non-persistent database.
//
// Unless WithAutoQuit or WithoutAutoQuit is given, the worker stops on its
// own once ctx is done and no command is pending.
func Open(ctx context.Context, path string, opts ...Option) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is required", domain.ErrInvalidInput)
	}
	return New(ctx, path, Opener(path), opts...)
}

// New starts a worker owning the engine created by open.
// name labels the database in logs and metrics.
func New(ctx context.Context, name string, open driven.EngineOpener, opts ...Option) (*DB, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if !o.autoQuitSet {
		o.autoQuit = AutoQuitOnDone(ctx)
	}

	metrics, err := newWorkerMetrics(o.registerer, name)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	logger := o.logger.With("database", name)
	db := &DB{
		in:     make(chan domain.Command, o.queueSize),
		out:    make(chan domain.Response, o.queueSize),
		done:   make(chan struct{}),
		path:   name,
		logger: logger,
	}

	w := &worker{
		open:         open,
		in:           db.in,
		out:          db.out,
		done:         db.done,
		autoQuit:     o.autoQuit,
		pollInterval: o.pollInterval,
		logger:       logger,
		metrics:      metrics,
	}

	ready := make(chan error, 1)
	go w.run(ctx, ready)
	if err := <-ready; err != nil {
		return nil, err
	}

	logger.Debug("database opened")
	return db, nil
}

// Path returns the name the database was opened with.
func (db *DB) Path() string {
	return db.path
}

// InMemory reports whether the database is non-persistent.
func (db *DB) InMemory() bool {
	return db.path == domain.MemoryPath
}

// Done is closed once the worker has stopped.
func (db *DB) Done() <-chan struct{} {
	return db.done
}

// Execute runs a parameterized statement and returns its rows.
// Engine failures are returned as *domain.EngineError.
// ctx bounds only the wait: a command that was enqueued is still executed.
func (db *DB) Execute(ctx context.Context, query string, args ...any) ([]domain.Row, error) {
	resp, err := db.roundTrip(ctx, domain.QueryCommand(query, args...))
	if err != nil {
		return nil, err
	}
	if resp.Kind == domain.ResponseError {
		return nil, resp.Err
	}
	return resp.Rows, nil
}

// Commit flushes pending writes to the backing file.
func (db *DB) Commit(ctx context.Context) (bool, error) {
	resp, err := db.roundTrip(ctx, domain.CommitCommand())
	if err != nil {
		return false, err
	}
	if resp.Kind == domain.ResponseError {
		return false, resp.Err
	}
	return resp.Ack, nil
}

// Quit stops the worker, committing and closing the connection.
// It blocks until the worker has stopped and always reports true,
// including when the worker was already stopped.
func (db *DB) Quit() bool {
	if _, err := db.roundTrip(context.Background(), domain.QuitCommand()); err != nil {
		// Only ErrClosed is possible without a deadline: already stopped.
		db.logger.Debug("quit on stopped database")
	}
	<-db.done
	return true
}

// Close implements io.Closer. It calls Quit and never fails.
func (db *DB) Close() error {
	db.Quit()
	return nil
}

// JSON runs query and returns each row as a map keyed by the column names of table.
//
// Column names are read from the table's schema and applied positionally:
// the caller must project columns in the table's declared order, otherwise
// values are labelled with the wrong names. Values beyond the table's column
// count are dropped.
func (db *DB) JSON(ctx context.Context, query, table string, args ...any) ([]map[string]any, error) {
	info, err := db.Execute(ctx, "PRAGMA table_info("+domain.QuoteIdentifier(table)+")")
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	columns := make([]string, 0, len(info))
	for _, col := range info {
		if len(col) > 1 {
			columns = append(columns, fmt.Sprint(col[1]))
		}
	}

	rows, err := db.Execute(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]any, len(columns))
		for i, value := range row {
			if i >= len(columns) {
				break
			}
			record[columns[i]] = value
		}
		records = append(records, record)
	}
	return records, nil
}

// roundTrip sends cmd to the worker and waits for its response.
func (db *DB) roundTrip(ctx context.Context, cmd domain.Command) (domain.Response, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	select {
	case <-db.done:
		return domain.Response{}, domain.ErrClosed
	default:
	}

	cmd.ID = uuid.NewString()
	select {
	case db.in <- cmd:
	case <-db.done:
		return domain.Response{}, domain.ErrClosed
	case <-ctx.Done():
		return domain.Response{}, ctx.Err()
	}

	for {
		select {
		case resp := <-db.out:
			if resp.ID == cmd.ID {
				return resp, nil
			}
			db.logger.Debug("discarding stale response", "id", resp.ID)
		case <-db.done:
			// The worker may have answered just before stopping.
			if resp, ok := db.drain(cmd.ID); ok {
				return resp, nil
			}
			return domain.Response{}, domain.ErrClosed
		case <-ctx.Done():
			return domain.Response{}, ctx.Err()
		}
	}
}

// drain empties the response queue, returning the response for id if present.
func (db *DB) drain(id string) (domain.Response, bool) {
	for {
		select {
		case resp := <-db.out:
			if resp.ID == id {
				return resp, true
			}
		default:
			return domain.Response{}, false
		}
	}
}
