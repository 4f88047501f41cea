// Package sqlitedb provides thread-safe, persistent, namespaced key-value
// storage in a single SQLite file.
//
// All statements against a database run on one worker goroutine that owns the
// only connection, so a Manager and every Store it hands out may be shared by
// any number of goroutines.
//
//	m, err := sqlitedb.Open(ctx, "/var/lib/app/data.db")
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//
//	users := m.Namespace("users")
//	if err := users.Set(ctx, "alice", map[string]any{"role": "admin"}); err != nil {
//		return err
//	}
//
// Each namespace is a table named db_<namespace>. Strings are stored as-is,
// JSON trees as JSON, and any other value through an opaque codec (gob by
// default; register named types with Register). Every write commits.
//
// By default the worker stops once the ctx given to Open is done and no
// command is pending; Close stops it explicitly.
package sqlitedb
