package codec

import (
	"fmt"

	"github.com/esoadamo/sqlitedb/internal/adapters/driven/codec/cborcodec"
	"github.com/esoadamo/sqlitedb/internal/adapters/driven/codec/gobcodec"
	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// New returns the codec selected by kind.
func New(kind domain.OpaqueCodec) (driven.OpaqueCodec, error) {
	switch kind {
	case domain.OpaqueCodecGob, "":
		return gobcodec.New(), nil
	case domain.OpaqueCodecCBOR:
		return cborcodec.New()
	default:
		return nil, fmt.Errorf("%w: unknown opaque codec %q", domain.ErrInvalidInput, kind)
	}
}
