package gobcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intSet map[int]bool

type point struct {
	X, Y int
}

type unregistered struct {
	N int
}

func init() {
	Register(intSet{})
	Register(point{})
}

func TestCodec_RoundTripPreservesType(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		value any
	}{
		{"set of ints", intSet{1: true, 2: true, 3: true}},
		{"struct", point{X: 1, Y: -2}},
		{"int", 42},
		{"generic map", map[string]any{"a": "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := c.Encode(tt.value)
			require.NoError(t, err)

			got, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestCodec_UnregisteredTypeFails(t *testing.T) {
	_, err := New().Encode(unregistered{N: 1})
	assert.Error(t, err)
}

func TestCodec_UnencodableValueFails(t *testing.T) {
	_, err := New().Encode(func() {})
	assert.Error(t, err)
}

func TestCodec_DecodeInto(t *testing.T) {
	c := New()
	data, err := c.Encode(point{X: 3, Y: 4})
	require.NoError(t, err)

	var p point
	require.NoError(t, c.DecodeInto(data, &p))
	assert.Equal(t, point{X: 3, Y: 4}, p)

	var wrong string
	assert.Error(t, c.DecodeInto(data, &wrong))
	assert.Error(t, c.DecodeInto(data, p))
}

func TestCodec_DecodeGarbage(t *testing.T) {
	_, err := New().Decode([]byte("not gob"))
	assert.Error(t, err)
}

func TestCodec_Name(t *testing.T) {
	assert.Equal(t, "gob", New().Name())
}
