package sqlitedb_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esoadamo/sqlitedb"
)

type intSet map[int]bool

func init() {
	sqlitedb.Register(intSet{})
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data.db")

	m, err := sqlitedb.Open(ctx, path, sqlitedb.WithoutAutoQuit())
	require.NoError(t, err)
	require.NoError(t, m.Namespace("users").Set(ctx, "alice", "admin"))
	require.NoError(t, m.Namespace("sets").Set(ctx, "primes", intSet{2: true, 3: true, 5: true}))
	require.NoError(t, m.Namespace("json").Set(ctx, "doc", map[string]any{"a": 1, "b": []any{1, 2, 3}}))
	require.NoError(t, m.Close())

	m, err = sqlitedb.Open(ctx, path, sqlitedb.WithoutAutoQuit())
	require.NoError(t, err)
	defer m.Close()

	got, err := m.Namespace("users").Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "admin", got)

	got, err = m.Namespace("sets").Get(ctx, "primes")
	require.NoError(t, err)
	assert.Equal(t, intSet{2: true, 3: true, 5: true}, got)

	got, err = m.Namespace("json").Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": []any{float64(1), float64(2), float64(3)}}, got)

	names, err := m.Namespaces(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"users", "sets", "json"}, names)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := sqlitedb.Open(context.Background(), "")
	assert.ErrorIs(t, err, sqlitedb.ErrInvalidInput)
}

func TestOpen_InvalidOptions(t *testing.T) {
	ctx := context.Background()

	_, err := sqlitedb.Open(ctx, sqlitedb.Memory, sqlitedb.WithCacheCapacity(0))
	assert.ErrorIs(t, err, sqlitedb.ErrInvalidInput)

	_, err = sqlitedb.Open(ctx, sqlitedb.Memory, sqlitedb.WithEviction("fifo"))
	assert.ErrorIs(t, err, sqlitedb.ErrInvalidInput)

	_, err = sqlitedb.Open(ctx, sqlitedb.Memory, sqlitedb.WithOpaqueCodec("pickle"))
	assert.ErrorIs(t, err, sqlitedb.ErrInvalidInput)
}

func TestOpen_AutoQuitOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m, err := sqlitedb.Open(ctx, sqlitedb.Memory, sqlitedb.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, m.Namespace("a").Set(context.Background(), "k", "v"))
	cancel()

	db := m.DB().(*sqlitedb.DB)
	select {
	case <-db.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after the owner context was cancelled")
	}

	_, err = m.Namespaces(context.Background())
	assert.ErrorIs(t, err, sqlitedb.ErrClosed)
	assert.NoError(t, m.Close())
}

func TestOpen_CustomAutoQuit(t *testing.T) {
	var stop atomic.Bool
	m, err := sqlitedb.Open(context.Background(), sqlitedb.Memory,
		sqlitedb.WithAutoQuit(stop.Load),
		sqlitedb.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	stop.Store(true)
	db := m.DB().(*sqlitedb.DB)
	select {
	case <-db.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestOpen_LRUAndCBOR(t *testing.T) {
	ctx := context.Background()
	m, err := sqlitedb.Open(ctx, sqlitedb.Memory,
		sqlitedb.WithoutAutoQuit(),
		sqlitedb.WithCacheCapacity(2),
		sqlitedb.WithEviction(sqlitedb.EvictionLRU),
		sqlitedb.WithOpaqueCodec(sqlitedb.CodecCBOR))
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Namespace("blobs").Set(ctx, "b", []byte{1, 2, 3}))
	var got []byte
	require.NoError(t, m.Namespace("blobs").Scan(ctx, "b", &got))
	assert.Equal(t, []byte{1, 2, 3}, got)

	m.Namespace("a")
	m.Namespace("b")
	m.Namespace("c")
	assert.Equal(t, 2, m.Cached())
}

func TestOpen_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m, err := sqlitedb.Open(ctx, sqlitedb.Memory, sqlitedb.WithoutAutoQuit(), sqlitedb.WithRegisterer(reg))
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Namespace("a").Set(ctx, "k", "v"))

	n, err := testutil.GatherAndCount(reg, "sqlitedb_worker_commands_total", "sqlitedb_cache_misses_total")
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestOpenConfig(t *testing.T) {
	cfg := sqlitedb.DefaultConfig()
	cfg.Database.Path = sqlitedb.Memory
	cfg.Database.AutoQuit = false

	m, err := sqlitedb.OpenConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, sqlitedb.Memory, m.DB().Path())
}
