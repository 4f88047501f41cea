// Package cborcodec encodes opaque values as CBOR (RFC 8949).
//
// Unlike gob, CBOR does not record Go types: Decode yields generic values
// (maps, slices, numbers). Use DecodeInto with a typed destination to restore
// the original type.
package cborcodec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// Codec is a CBOR-based driven.OpaqueCodec.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ driven.OpaqueCodec = (*Codec)(nil)

// New returns a CBOR codec using canonical encoding, so equal values encode to equal bytes.
func New() (*Codec, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("creating cbor encoder: %w", err)
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("creating cbor decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Name returns "cbor".
func (c *Codec) Name() string {
	return "cbor"
}

// Encode serializes v.
func (c *Codec) Encode(v any) ([]byte, error) {
	data, err := c.enc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor encode %T: %w", v, err)
	}
	return data, nil
}

// Decode restores a generic value.
func (c *Codec) Decode(data []byte) (any, error) {
	var v any
	if err := c.dec.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("cbor decode: %w", err)
	}
	return v, nil
}

// DecodeInto restores the value into dst.
func (c *Codec) DecodeInto(data []byte, dst any) error {
	if err := c.dec.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("cbor decode: %w", err)
	}
	return nil
}
