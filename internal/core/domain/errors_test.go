package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrKeyNotFound", ErrKeyNotFound},
		{"ErrClosed", ErrClosed},
		{"ErrSerialization", ErrSerialization},
		{"ErrUnknownCommand", ErrUnknownCommand},
		{"ErrInvalidInput", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrKeyNotFound_Wrapped(t *testing.T) {
	err := fmt.Errorf("users/alice: %w", ErrKeyNotFound)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
	assert.False(t, errors.Is(err, ErrClosed))
	assert.Equal(t, "users/alice: key not found", err.Error())
}

func TestEngineError(t *testing.T) {
	cause := errors.New("no such table: db_x")
	err := error(&EngineError{Query: "SELECT * FROM db_x", Err: cause})

	assert.Equal(t, "engine: no such table: db_x", err.Error())
	assert.ErrorIs(t, err, cause)

	var engineErr *EngineError
	wrapped := fmt.Errorf("reading: %w", err)
	assert.True(t, errors.As(wrapped, &engineErr))
	assert.Equal(t, "SELECT * FROM db_x", engineErr.Query)
}
