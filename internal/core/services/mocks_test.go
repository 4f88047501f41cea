package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esoadamo/sqlitedb/internal/adapters/driven/cache"
	"github.com/esoadamo/sqlitedb/internal/adapters/driven/codec/gobcodec"
	"github.com/esoadamo/sqlitedb/internal/adapters/driven/storage/sqlite"
	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// --- Test fixtures ---

// openTestDB opens an in-memory database that is quit when the test ends.
func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), domain.MemoryPath, sqlite.WithoutAutoQuit())
	require.NoError(t, err)
	t.Cleanup(func() { db.Quit() })
	return db
}

// newTestManager returns a Manager over a fresh in-memory database.
func newTestManager(t *testing.T, capacity int) *Manager {
	t.Helper()
	c, err := cache.New[*Store](capacity, cache.NewRandom())
	require.NoError(t, err)
	return NewManager(openTestDB(t), NewTriage(gobcodec.New()), c, nil)
}

// --- Mock implementations ---

// recordingExecutor wraps an Executor and records every statement.
type recordingExecutor struct {
	driven.Executor

	mu      sync.Mutex
	queries []string
	commits int
}

func (r *recordingExecutor) Execute(ctx context.Context, query string, args ...any) ([]domain.Row, error) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	return r.Executor.Execute(ctx, query, args...)
}

func (r *recordingExecutor) Commit(ctx context.Context) (bool, error) {
	r.mu.Lock()
	r.commits++
	r.mu.Unlock()
	return r.Executor.Commit(ctx)
}

// count returns how many recorded statements contain fragment.
func (r *recordingExecutor) count(fragment string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, q := range r.queries {
		if strings.Contains(q, fragment) {
			n++
		}
	}
	return n
}

// failingExecutor fails every statement with err.
type failingExecutor struct {
	err error
}

func (f *failingExecutor) Execute(context.Context, string, ...any) ([]domain.Row, error) {
	return nil, f.err
}

func (f *failingExecutor) Commit(context.Context) (bool, error) {
	return false, f.err
}

// failingCodec fails every encode and decode.
type failingCodec struct {
	err error
}

func (failingCodec) Name() string { return "failing" }

func (f failingCodec) Encode(any) ([]byte, error) { return nil, f.err }

func (f failingCodec) Decode([]byte) (any, error) { return nil, f.err }

func (f failingCodec) DecodeInto([]byte, any) error { return f.err }
