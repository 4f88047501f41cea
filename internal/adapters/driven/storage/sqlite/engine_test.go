package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

func TestEngine_ExecuteReturnsRowsForAnyStatement(t *testing.T) {
	engine, err := OpenEngine(context.Background(), domain.MemoryPath)
	require.NoError(t, err)
	defer engine.Close()
	ctx := context.Background()

	_, err = engine.Execute(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY, a INTEGER)")
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []domain.Row
	}{
		{"plain select", "SELECT 1", []domain.Row{{int64(1)}}},
		{"line comment", "-- count\nSELECT 1", []domain.Row{{int64(1)}}},
		{"block comment", "/* x */ SELECT 1", []domain.Row{{int64(1)}}},
		{"cte", "WITH x AS (SELECT 2 AS n) SELECT n FROM x", []domain.Row{{int64(2)}}},
		{"values", "VALUES (3)", []domain.Row{{int64(3)}}},
		{"returning after newline", "INSERT INTO t (a) VALUES (10)\nRETURNING id", []domain.Row{{int64(1)}}},
		{"insert", "INSERT INTO t (a) VALUES (20)", []domain.Row{}},
		{"update", "UPDATE t SET a = a + 1", []domain.Row{}},
		{"pragma", "PRAGMA user_version", []domain.Row{{int64(0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := engine.Execute(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}

	rows, err := engine.Execute(ctx, "SELECT a FROM t ORDER BY id")
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{{int64(11)}, {int64(21)}}, rows)
}

func TestEngine_CommitWithoutTransactionIsNoop(t *testing.T) {
	engine, err := OpenEngine(context.Background(), domain.MemoryPath)
	require.NoError(t, err)
	defer engine.Close()

	assert.NoError(t, engine.Commit(context.Background()))
	assert.Equal(t, domain.MemoryPath, engine.Path())
}

func TestEngine_CloseDiscardsUncommitted(t *testing.T) {
	path := t.TempDir() + "/rollback.db"
	ctx := context.Background()

	engine, err := OpenEngine(ctx, path)
	require.NoError(t, err)
	_, err = engine.Execute(ctx, "CREATE TABLE t (v TEXT)")
	require.NoError(t, err)
	require.NoError(t, engine.Commit(ctx))
	_, err = engine.Execute(ctx, "INSERT INTO t (v) VALUES ('lost')")
	require.NoError(t, err)
	require.NoError(t, engine.Close())

	reopened, err := OpenEngine(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.Execute(ctx, "SELECT COUNT(*) FROM t")
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows[0][0])
}
