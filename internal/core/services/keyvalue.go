package services

import (
	"context"
	"fmt"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driving"
)

// Ensure KeyValueService implements the interface.
var _ driving.KeyValueService = (*KeyValueService)(nil)

// KeyValueService addresses values by namespace and key.
type KeyValueService struct {
	manager *Manager
}

// NewKeyValueService creates a new key-value service.
func NewKeyValueService(manager *Manager) *KeyValueService {
	return &KeyValueService{manager: manager}
}

// Namespaces lists every namespace stored in the database.
func (s *KeyValueService) Namespaces(ctx context.Context) ([]string, error) {
	return s.manager.Namespaces(ctx)
}

// Get returns the value stored under key in namespace.
func (s *KeyValueService) Get(ctx context.Context, namespace, key string) (any, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	return s.manager.Namespace(namespace).Get(ctx, key)
}

// Set stores value under key in namespace.
func (s *KeyValueService) Set(ctx context.Context, namespace, key string, value any) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	return s.manager.Namespace(namespace).Set(ctx, key, value)
}

// Delete removes key from namespace.
func (s *KeyValueService) Delete(ctx context.Context, namespace, key string) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	return s.manager.Namespace(namespace).Delete(ctx, key)
}

// Keys lists the keys of namespace.
func (s *KeyValueService) Keys(ctx context.Context, namespace string) ([]string, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	return s.manager.Namespace(namespace).Keys(ctx)
}

// Items returns every key and value of namespace.
func (s *KeyValueService) Items(ctx context.Context, namespace string) (map[string]any, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	return s.manager.Namespace(namespace).Items(ctx)
}

// DropNamespace removes namespace and its data.
func (s *KeyValueService) DropNamespace(ctx context.Context, namespace string) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	return s.manager.Delete(ctx, namespace)
}

// Query runs query and labels each row with the column names of table.
func (s *KeyValueService) Query(ctx context.Context, table, query string, args ...any) ([]map[string]any, error) {
	if table == "" || query == "" {
		return nil, fmt.Errorf("%w: table and query are required", domain.ErrInvalidInput)
	}
	return s.manager.DB().JSON(ctx, query, table, args...)
}

func validateNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("%w: namespace is required", domain.ErrInvalidInput)
	}
	return nil
}
