package driven

// OpaqueCodec encodes values that have no structured (JSON) form.
// Implementations must be thread-safe.
type OpaqueCodec interface {
	// Name identifies the codec.
	Name() string

	// Encode serializes v to bytes.
	Encode(v any) ([]byte, error)

	// Decode restores a value produced by Encode.
	Decode(data []byte) (any, error)

	// DecodeInto restores a value produced by Encode into dst, which must be a pointer.
	DecodeInto(data []byte, dst any) error
}
