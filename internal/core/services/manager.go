package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// Manager hands out Store handles for the namespaces of one database.
//
// Handles are memoized in a bounded cache. Evicting a handle only forgets it;
// the namespace table and its data stay in the database.
type Manager struct {
	db     driven.Database
	triage *Triage
	logger *slog.Logger

	mu    sync.Mutex // serializes get-or-create
	cache driven.Cache[*Store]
}

// NewManager creates a Manager over db.
func NewManager(db driven.Database, triage *Triage, cache driven.Cache[*Store], logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		db:     db,
		triage: triage,
		logger: logger,
		cache:  cache,
	}
}

// DB returns the underlying database.
func (m *Manager) DB() driven.Database {
	return m.db
}

// Namespace returns the handle for name, creating it if it is not cached.
func (m *Manager) Namespace(name string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.cache.Get(name); ok {
		return store
	}

	store := NewStore(name, m.db, m.triage, m.logger)
	if evicted, ok := m.cache.Add(name, store); ok {
		m.logger.Debug("evicted namespace handle", "namespace", evicted)
	}
	return store
}

// Cached returns the number of cached handles.
func (m *Manager) Cached() int {
	return m.cache.Len()
}

// Namespaces lists every namespace table in the database.
func (m *Manager) Namespaces(ctx context.Context) ([]string, error) {
	rows, err := m.db.Execute(ctx, "SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, fmt.Errorf("listing namespaces: %w", err)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := domain.NamespaceFromTable(asText(row[0])); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Contains reports whether namespace name exists in the database.
func (m *Manager) Contains(ctx context.Context, name string) (bool, error) {
	rows, err := m.db.Execute(ctx,
		"SELECT 1 FROM sqlite_master WHERE type='table' AND name=?", domain.TableName(name))
	if err != nil {
		return false, fmt.Errorf("looking up namespace %s: %w", name, err)
	}
	return len(rows) > 0, nil
}

// Delete drops namespace name and forgets its handle.
// A namespace that is not cached is dropped without touching the cache.
func (m *Manager) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	store, ok := m.cache.Get(name)
	if ok {
		m.cache.Remove(name)
	}
	m.mu.Unlock()

	if !ok {
		store = NewStore(name, m.db, m.triage, m.logger)
	}
	return store.Drop(ctx)
}

// Items returns a handle for every namespace in the database.
func (m *Manager) Items(ctx context.Context) (map[string]*Store, error) {
	names, err := m.Namespaces(ctx)
	if err != nil {
		return nil, err
	}
	items := make(map[string]*Store, len(names))
	for _, name := range names {
		items[name] = m.Namespace(name)
	}
	return items, nil
}

// Values returns a handle for every namespace in the database.
func (m *Manager) Values(ctx context.Context) ([]*Store, error) {
	names, err := m.Namespaces(ctx)
	if err != nil {
		return nil, err
	}
	stores := make([]*Store, 0, len(names))
	for _, name := range names {
		stores = append(stores, m.Namespace(name))
	}
	return stores, nil
}

// Len returns the number of namespaces in the database.
func (m *Manager) Len(ctx context.Context) (int, error) {
	names, err := m.Namespaces(ctx)
	return len(names), err
}

// IsEmpty reports whether the database holds no namespaces.
func (m *Manager) IsEmpty(ctx context.Context) (bool, error) {
	n, err := m.Len(ctx)
	return n == 0, err
}

// Close stops the database worker. It is safe to call more than once.
func (m *Manager) Close() error {
	m.db.Quit()
	return nil
}
