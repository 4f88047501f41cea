package cli

import (
	"context"
	"fmt"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driving"
)

// mockKeyValueService is an in-memory implementation of driving.KeyValueService.
type mockKeyValueService struct {
	data    map[string]map[string]any
	err     error
	queries []string
}

var _ driving.KeyValueService = (*mockKeyValueService)(nil)

func newMockKeyValueService() *mockKeyValueService {
	return &mockKeyValueService{data: make(map[string]map[string]any)}
}

func (m *mockKeyValueService) Namespaces(_ context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockKeyValueService) Get(_ context.Context, namespace, key string) (any, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[namespace][key]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", namespace, key, domain.ErrKeyNotFound)
	}
	return v, nil
}

func (m *mockKeyValueService) Set(_ context.Context, namespace, key string, value any) error {
	if m.err != nil {
		return m.err
	}
	if m.data[namespace] == nil {
		m.data[namespace] = make(map[string]any)
	}
	m.data[namespace][key] = value
	return nil
}

func (m *mockKeyValueService) Delete(_ context.Context, namespace, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data[namespace], key)
	return nil
}

func (m *mockKeyValueService) Keys(_ context.Context, namespace string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	keys := make([]string, 0, len(m.data[namespace]))
	for k := range m.data[namespace] {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *mockKeyValueService) Items(_ context.Context, namespace string) (map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[namespace], nil
}

func (m *mockKeyValueService) DropNamespace(_ context.Context, namespace string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, namespace)
	return nil
}

func (m *mockKeyValueService) Query(_ context.Context, table, query string, _ ...any) ([]map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.queries = append(m.queries, query)
	return []map[string]any{{"table": table}}, nil
}
