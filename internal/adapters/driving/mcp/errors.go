// Package mcp provides an MCP (Model Context Protocol) server adapter for sqlitedb.
// It lets AI assistants read and write namespaced values in a local database.
package mcp

import "errors"

// ErrMissingKeyValueService is returned when the key-value service is not provided.
var ErrMissingKeyValueService = errors.New("mcp: key-value service is required")
