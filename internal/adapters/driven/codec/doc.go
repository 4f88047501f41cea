// Package codec groups the driven.OpaqueCodec implementations.
//
// Adapters:
//   - gobcodec: encoding/gob, preserves concrete Go types registered with Register
//   - cborcodec: CBOR via fxamacker/cbor, readable from other languages
package codec
