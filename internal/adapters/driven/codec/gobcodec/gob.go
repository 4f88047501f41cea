// Package gobcodec encodes opaque values with encoding/gob.
//
// Values are wrapped in an interface field so that decoding restores the
// concrete type. Any named type stored this way must be registered once,
// before use, with Register.
package gobcodec

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"reflect"

	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

func init() {
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// Register records a concrete type so it can be stored as an opaque value.
func Register(value any) {
	gob.Register(value)
}

// envelope carries the value behind an interface so gob records its type.
type envelope struct {
	V any
}

// Codec is a gob-based driven.OpaqueCodec.
type Codec struct{}

var _ driven.OpaqueCodec = Codec{}

// New returns a gob codec.
func New() Codec {
	return Codec{}
}

// Name returns "gob".
func (Codec) Name() string {
	return "gob"
}

// Encode serializes v.
func (Codec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&envelope{V: v}); err != nil {
		return nil, fmt.Errorf("gob encode %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

// Decode restores the value with its concrete type.
func (Codec) Decode(data []byte) (any, error) {
	var e envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	return e.V, nil
}

// DecodeInto restores the value and assigns it to *dst.
func (c Codec) DecodeInto(data []byte, dst any) error {
	v, err := c.Decode(data)
	if err != nil {
		return err
	}

	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("gob decode: destination must be a non-nil pointer, got %T", dst)
	}
	elem := target.Elem()
	if v == nil {
		elem.SetZero()
		return nil
	}
	value := reflect.ValueOf(v)
	if !value.Type().AssignableTo(elem.Type()) {
		return fmt.Errorf("gob decode: cannot assign %T to %s", v, elem.Type())
	}
	elem.Set(value)
	return nil
}
