package driving

import (
	"context"
)

// KeyValueService exposes namespaced key-value storage to external actors.
type KeyValueService interface {
	// Namespaces lists every namespace stored in the database.
	Namespaces(ctx context.Context) ([]string, error)

	// Get returns the value stored under key in namespace.
	// Returns domain.ErrKeyNotFound if the key is not stored.
	Get(ctx context.Context, namespace, key string) (any, error)

	// Set stores value under key in namespace and commits.
	Set(ctx context.Context, namespace, key string, value any) error

	// Delete removes key from namespace. Deleting a missing key is not an error.
	Delete(ctx context.Context, namespace, key string) error

	// Keys lists the keys of namespace in no particular order.
	Keys(ctx context.Context, namespace string) ([]string, error)

	// Items returns every key and value of namespace.
	Items(ctx context.Context, namespace string) (map[string]any, error)

	// DropNamespace permanently removes namespace and its data.
	DropNamespace(ctx context.Context, namespace string) error

	// Query runs a read statement against table and labels rows with its column names.
	Query(ctx context.Context, table, query string, args ...any) ([]map[string]any, error)
}
