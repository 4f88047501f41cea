// Package sqlite provides the synchronized SQLite database used by every key-value store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single native connection is owned by one
// worker goroutine for its whole lifetime:
//
//   - Engine: the connection; statements run in a lazily opened transaction
//     that Commit closes
//   - worker: executes one command at a time from its queue and answers each
//     with exactly one response
//   - DB: the entry point shared by all callers; it serializes them onto the
//     worker with one lock and matches responses by command ID
//
// # Lifecycle
//
// The connection is opened on the worker goroutine when the DB is created and
// closed, after a final commit, when the worker stops. The worker stops on Quit,
// or on its own when the autoquit predicate reports the owner is done and no
// command is pending. Once stopped, every call except Quit returns domain.ErrClosed.
//
// # Data Location
//
// The database is a single file; its directory is created with mode 0770 if
// absent. The reserved path ":memory:" selects a non-persistent database.
package sqlite
