// Package services implements the key-value layer on top of the driven ports.
//
// Triage reduces values to text, Store maps one namespace onto one table,
// Manager memoizes Store handles, and KeyValueService exposes them to the
// driving adapters.
//
// Services are pure Go with no CGO or external dependencies.
package services
