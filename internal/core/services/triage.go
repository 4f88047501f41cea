package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

var jsonMarshalerType = reflect.TypeFor[json.Marshaler]()

// Triage chooses how a value is reduced to text for the value column.
//
// Strings are stored unchanged. JSON trees (maps keyed by strings, slices,
// numbers, booleans and nil) and json.Marshaler values are stored as JSON.
// Everything else goes through the opaque codec and is base64 encoded.
type Triage struct {
	opaque driven.OpaqueCodec
}

// NewTriage creates a Triage using opaque for values that are not JSON trees.
func NewTriage(opaque driven.OpaqueCodec) *Triage {
	return &Triage{opaque: opaque}
}

// Codec returns the opaque codec.
func (t *Triage) Codec() driven.OpaqueCodec {
	return t.opaque
}

// Classify encodes v and reports which tag it was stored under.
func (t *Triage) Classify(v any) (domain.Encoded, error) {
	if s, ok := v.(string); ok {
		return domain.Encoded{Tag: domain.TagRaw, Text: s}, nil
	}

	if isStructured(reflect.ValueOf(v), 0) {
		data, err := json.Marshal(v)
		if err == nil {
			return domain.Encoded{Tag: domain.TagStructured, Text: string(data)}, nil
		}
		// NaN, cyclic maps and the like still have an opaque form.
	}

	data, err := t.opaque.Encode(v)
	if err != nil {
		return domain.Encoded{}, fmt.Errorf("%w: %s encoding %T: %w", domain.ErrSerialization, t.opaque.Name(), v, err)
	}
	return domain.Encoded{Tag: domain.TagOpaque, Text: base64.StdEncoding.EncodeToString(data)}, nil
}

// Restore decodes text stored under tag.
// Structured values come back as the generic JSON shapes of encoding/json.
func (t *Triage) Restore(text string, tag domain.Tag) (any, error) {
	switch tag {
	case domain.TagRaw:
		return text, nil
	case domain.TagStructured:
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return nil, fmt.Errorf("%w: decoding json: %w", domain.ErrSerialization, err)
		}
		return v, nil
	case domain.TagOpaque:
		data, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding base64: %w", domain.ErrSerialization, err)
		}
		v, err := t.opaque.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s decoding: %w", domain.ErrSerialization, t.opaque.Name(), err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unknown tag %d", domain.ErrSerialization, int(tag))
	}
}

// RestoreInto decodes text stored under tag into dst, which must be a non-nil pointer.
func (t *Triage) RestoreInto(text string, tag domain.Tag, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: destination must be a non-nil pointer, got %T", domain.ErrInvalidInput, dst)
	}

	switch tag {
	case domain.TagRaw:
		target := rv.Elem()
		switch {
		case target.Kind() == reflect.String:
			target.SetString(text)
		case target.Kind() == reflect.Interface && target.NumMethod() == 0:
			target.Set(reflect.ValueOf(text))
		default:
			return fmt.Errorf("%w: cannot store a string in %s", domain.ErrSerialization, target.Type())
		}
		return nil
	case domain.TagStructured:
		if err := json.Unmarshal([]byte(text), dst); err != nil {
			return fmt.Errorf("%w: decoding json: %w", domain.ErrSerialization, err)
		}
		return nil
	case domain.TagOpaque:
		data, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return fmt.Errorf("%w: decoding base64: %w", domain.ErrSerialization, err)
		}
		if err := t.opaque.DecodeInto(data, dst); err != nil {
			return fmt.Errorf("%w: %s decoding: %w", domain.ErrSerialization, t.opaque.Name(), err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown tag %d", domain.ErrSerialization, int(tag))
	}
}

// maxTreeDepth bounds the walk so cyclic values are treated as opaque.
const maxTreeDepth = 256

// isStructured reports whether v is a JSON tree.
func isStructured(v reflect.Value, depth int) bool {
	if depth > maxTreeDepth {
		return false
	}
	if !v.IsValid() {
		return true // nil
	}
	if v.Type().Implements(jsonMarshalerType) {
		return true
	}

	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return isStructured(v.Elem(), depth+1)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return false // []byte marshals as base64 and would come back as a string
		}
		if v.IsNil() {
			return true
		}
		return elementsStructured(v, depth+1)
	case reflect.Array:
		return elementsStructured(v, depth+1)
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return false
		}
		iter := v.MapRange()
		for iter.Next() {
			if !isStructured(iter.Value(), depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func elementsStructured(v reflect.Value, depth int) bool {
	for i := range v.Len() {
		if !isStructured(v.Index(i), depth) {
			return false
		}
	}
	return true
}
