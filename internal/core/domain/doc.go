// Package domain defines the core types for sqlitedb.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Command / Response: the messages exchanged with the database worker
//   - Row: one result tuple returned by a query
//   - Tag / Encoded: how a value is stored in a namespace table
//   - Config: runtime configuration shared by adapters
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
