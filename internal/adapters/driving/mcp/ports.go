package mcp

import (
	"github.com/esoadamo/sqlitedb/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// KeyValue reads and writes namespaced values.
	KeyValue driving.KeyValueService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.KeyValue == nil {
		return ErrMissingKeyValueService
	}
	return nil
}
