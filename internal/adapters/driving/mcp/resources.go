package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for sqlitedb resources.
	uriScheme = "sqlitedb://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "namespaces",
		Name:        "namespaces",
		Description: "Names of all namespaces in the database",
		MIMEType:    "application/json",
	}, s.handleNamespacesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "namespaces/{namespace}",
		Name:        "namespace-items",
		Description: "Every key and value of a namespace",
		MIMEType:    "application/json",
	}, s.handleNamespaceResource)
}

// handleNamespacesResource returns the sorted namespace names.
func (s *Server) handleNamespacesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names, err := s.ports.KeyValue.Namespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing namespaces: %w", err)
	}
	sort.Strings(names)
	return jsonResource(req.Params.URI, names)
}

// handleNamespaceResource returns the items of one namespace.
func (s *Server) handleNamespaceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractNamespace(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	exists := false
	names, err := s.ports.KeyValue.Namespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing namespaces: %w", err)
	}
	for _, n := range names {
		if n == name {
			exists = true
			break
		}
	}
	if !exists {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	items, err := s.ports.KeyValue.Items(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reading namespace %s: %w", name, err)
	}
	return jsonResource(req.Params.URI, items)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractNamespace extracts the namespace from a URI like sqlitedb://namespaces/{namespace}.
func extractNamespace(uri string) string {
	const prefix = uriScheme + "namespaces/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
