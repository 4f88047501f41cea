package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

// ListNamespacesInput is the input schema for the list_namespaces tool.
type ListNamespacesInput struct{}

// ListNamespacesOutput is the output schema for the list_namespaces tool.
type ListNamespacesOutput struct {
	Namespaces []string `json:"namespaces"`
	Count      int      `json:"count"`
}

// KeyInput addresses one key of a namespace.
type KeyInput struct {
	Namespace string `json:"namespace" jsonschema:"the namespace holding the key"`
	Key       string `json:"key" jsonschema:"the key to address"`
}

// GetValueOutput is the output schema for the get_value tool.
type GetValueOutput struct {
	Found bool `json:"found"`
	Value any  `json:"value,omitempty"`
}

// SetValueInput is the input schema for the set_value tool.
type SetValueInput struct {
	Namespace string `json:"namespace" jsonschema:"the namespace to write to; created if absent"`
	Key       string `json:"key" jsonschema:"the key to write"`
	Value     any    `json:"value" jsonschema:"the value; strings are stored verbatim, other JSON values as JSON"`
}

// WriteOutput reports the outcome of a write.
type WriteOutput struct {
	OK bool `json:"ok"`
}

// ListKeysInput is the input schema for the list_keys tool.
type ListKeysInput struct {
	Namespace string `json:"namespace" jsonschema:"the namespace to list"`
}

// ListKeysOutput is the output schema for the list_keys tool.
type ListKeysOutput struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_namespaces",
		Description: "List every namespace stored in the database",
	}, s.handleListNamespaces)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_value",
		Description: "Read the value stored under a key of a namespace",
	}, s.handleGetValue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_value",
		Description: "Store a value under a key of a namespace",
	}, s.handleSetValue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_value",
		Description: "Delete a key from a namespace; deleting a missing key succeeds",
	}, s.handleDeleteValue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_keys",
		Description: "List the keys of a namespace",
	}, s.handleListKeys)
}

func (s *Server) handleListNamespaces(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListNamespacesInput,
) (*mcp.CallToolResult, ListNamespacesOutput, error) {
	names, err := s.ports.KeyValue.Namespaces(ctx)
	if err != nil {
		return nil, ListNamespacesOutput{}, fmt.Errorf("listing namespaces: %w", err)
	}
	sort.Strings(names)
	return nil, ListNamespacesOutput{Namespaces: names, Count: len(names)}, nil
}

func (s *Server) handleGetValue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KeyInput,
) (*mcp.CallToolResult, GetValueOutput, error) {
	v, err := s.ports.KeyValue.Get(ctx, input.Namespace, input.Key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, GetValueOutput{Found: false}, nil
	}
	if err != nil {
		return nil, GetValueOutput{}, err
	}
	return nil, GetValueOutput{Found: true, Value: v}, nil
}

func (s *Server) handleSetValue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetValueInput,
) (*mcp.CallToolResult, WriteOutput, error) {
	if err := s.ports.KeyValue.Set(ctx, input.Namespace, input.Key, input.Value); err != nil {
		return nil, WriteOutput{}, err
	}
	return nil, WriteOutput{OK: true}, nil
}

func (s *Server) handleDeleteValue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KeyInput,
) (*mcp.CallToolResult, WriteOutput, error) {
	if err := s.ports.KeyValue.Delete(ctx, input.Namespace, input.Key); err != nil {
		return nil, WriteOutput{}, err
	}
	return nil, WriteOutput{OK: true}, nil
}

func (s *Server) handleListKeys(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListKeysInput,
) (*mcp.CallToolResult, ListKeysOutput, error) {
	keys, err := s.ports.KeyValue.Keys(ctx, input.Namespace)
	if err != nil {
		return nil, ListKeysOutput{}, err
	}
	sort.Strings(keys)
	return nil, ListKeysOutput{Keys: keys, Count: len(keys)}, nil
}
