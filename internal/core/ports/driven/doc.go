// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Engine: the native SQLite connection, owned by the worker
//   - Executor: thread-safe statement execution used by key-value stores
//   - Database: Executor plus JSON, Quit and Path
//   - OpaqueCodec: binary encoding for values with no JSON form (gob, CBOR)
//   - Cache: bounded namespace handle cache with pluggable eviction
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
