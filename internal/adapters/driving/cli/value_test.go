package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

func TestGetCmd_RequiresTwoArgs(t *testing.T) {
	_, err := run(t, "get", "only-namespace")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestGetCmd_PrintsStringsVerbatim(t *testing.T) {
	svc := newMockKeyValueService()
	svc.data["cfg"] = map[string]any{"theme": "dark", "size": map[string]any{"w": 1.0}}
	withService(t, svc)

	out, err := run(t, "get", "cfg", "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = run(t, "get", "cfg", "size")
	require.NoError(t, err)
	assert.Equal(t, "{\"w\":1}\n", out)
}

func TestGetCmd_Default(t *testing.T) {
	withService(t, newMockKeyValueService())

	out, err := run(t, "get", "--default", "light", "cfg", "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	_, err = run(t, "get", "cfg", "theme")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestSetCmd(t *testing.T) {
	svc := newMockKeyValueService()
	withService(t, svc)

	_, err := run(t, "set", "cfg", "theme", "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", svc.data["cfg"]["theme"])

	_, err = run(t, "set", "--json", "cfg", "sizes", "[1,2]")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, svc.data["cfg"]["sizes"])

	_, err = run(t, "set", "--json", "cfg", "bad", "{")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelCmd(t *testing.T) {
	svc := newMockKeyValueService()
	svc.data["cfg"] = map[string]any{"theme": "dark"}
	withService(t, svc)

	_, err := run(t, "del", "cfg", "theme")
	require.NoError(t, err)
	assert.NotContains(t, svc.data["cfg"], "theme")

	svc.err = errors.New("read-only")
	_, err = run(t, "rm", "cfg", "theme")
	assert.Error(t, err)
}
