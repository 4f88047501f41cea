package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// Store is the key-value view of one namespace table.
//
// The table is created on first use. Once the tag column has been seen it is
// remembered until Drop; while it is absent every read and write re-checks,
// since another handle for the same namespace may add it. Every write commits.
type Store struct {
	name   string
	table  string // quoted
	exec   driven.Executor
	triage *Triage
	logger *slog.Logger

	mu       sync.Mutex
	created  bool
	migrated bool
}

// NewStore returns a handle for namespace name. No statement runs until first use.
func NewStore(name string, exec driven.Executor, triage *Triage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		name:   name,
		table:  domain.QuoteIdentifier(domain.TableName(name)),
		exec:   exec,
		triage: triage,
		logger: logger.With("namespace", name),
	}
}

// Name returns the namespace name.
func (s *Store) Name() string {
	return s.name
}

// ensureTable creates the namespace table once per handle.
func (s *Store) ensureTable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureTableLocked(ctx)
}

func (s *Store) ensureTableLocked(ctx context.Context) error {
	if s.created {
		return nil
	}
	_, err := s.exec.Execute(ctx, `CREATE TABLE IF NOT EXISTS `+s.table+` (
	`+"`id`"+` INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT UNIQUE,
	`+"`key`"+` TEXT NOT NULL UNIQUE,
	`+"`value`"+` TEXT
)`)
	if err != nil {
		return fmt.Errorf("creating table for namespace %s: %w", s.name, err)
	}
	s.created = true
	return nil
}

// forget drops the cached schema state so the next call re-creates and re-probes.
func (s *Store) forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = false
	s.migrated = false
}

// retryStale runs op, and once more after forget if the table was dropped
// or recreated underneath the handle.
func (s *Store) retryStale(op func() error) error {
	err := op()
	if err == nil || !isStaleSchema(err) {
		return err
	}
	s.logger.Debug("table changed underneath handle, retrying", "error", err)
	s.forget()
	return op()
}

// Migrated reports whether the table carries the tag column.
// A positive answer is cached; a negative one is probed again next time.
func (s *Store) Migrated(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migratedLocked(ctx)
}

func (s *Store) migratedLocked(ctx context.Context) (bool, error) {
	if err := s.ensureTableLocked(ctx); err != nil {
		return false, err
	}
	if s.migrated {
		return true, nil
	}

	rows, err := s.exec.Execute(ctx, "PRAGMA table_info("+s.table+")")
	if err != nil {
		return false, fmt.Errorf("probing columns of namespace %s: %w", s.name, err)
	}
	for _, row := range rows {
		if len(row) > 1 && fmt.Sprint(row[1]) == domain.TagColumn {
			s.migrated = true
			break
		}
	}
	return s.migrated, nil
}

// knownMigrated reports the cached answer without probing.
func (s *Store) knownMigrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migrated
}

// Migrate adds the tag column if it is absent. It is idempotent and never reverts.
func (s *Store) Migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	migrated, err := s.migratedLocked(ctx)
	if err != nil || migrated {
		return err
	}

	_, err = s.exec.Execute(ctx, "ALTER TABLE "+s.table+" ADD COLUMN `"+domain.TagColumn+"` INTEGER NOT NULL DEFAULT 0")
	if err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("migrating namespace %s: %w", s.name, err)
	}
	s.migrated = true
	s.logger.Debug("added tag column")
	return nil
}

// Get returns the value stored under key, or domain.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (any, error) {
	text, tag, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.triage.Restore(text, tag)
}

// GetDefault returns the value stored under key, or def if it cannot be read.
func (s *Store) GetDefault(ctx context.Context, key string, def any) any {
	v, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn("reading value failed, using default", "key", key, "error", err)
		}
		return def
	}
	return v
}

// Scan decodes the value stored under key into dst, a non-nil pointer.
func (s *Store) Scan(ctx context.Context, key string, dst any) error {
	text, tag, err := s.lookup(ctx, key)
	if err != nil {
		return err
	}
	return s.triage.RestoreInto(text, tag, dst)
}

// lookup reads the stored text and tag of key.
func (s *Store) lookup(ctx context.Context, key string) (text string, tag domain.Tag, err error) {
	err = s.retryStale(func() error {
		text, tag, err = s.lookupOnce(ctx, key)
		return err
	})
	return text, tag, err
}

func (s *Store) lookupOnce(ctx context.Context, key string) (string, domain.Tag, error) {
	migrated, err := s.Migrated(ctx)
	if err != nil {
		return "", domain.TagRaw, err
	}

	query := "SELECT `value` FROM " + s.table + " WHERE `key`=?"
	if migrated {
		query = "SELECT `value`, `" + domain.TagColumn + "` FROM " + s.table + " WHERE `key`=?"
	}
	rows, err := s.exec.Execute(ctx, query, key)
	if err != nil {
		return "", domain.TagRaw, fmt.Errorf("reading %s/%s: %w", s.name, key, err)
	}
	if len(rows) == 0 {
		return "", domain.TagRaw, fmt.Errorf("%s/%s: %w", s.name, key, domain.ErrKeyNotFound)
	}

	row := rows[0]
	text := asText(row[0])
	tag := domain.TagRaw
	if migrated && len(row) > 1 {
		n, err := asInt(row[1])
		if err != nil {
			return "", domain.TagRaw, fmt.Errorf("%w: tag of %s/%s: %w", domain.ErrSerialization, s.name, key, err)
		}
		tag = domain.Tag(n)
	}
	return text, tag, nil
}

// Set stores value under key and commits.
// A non-string value migrates the table first if needed.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	enc, err := s.triage.Classify(value)
	if err != nil {
		return err
	}

	if err := s.retryStale(func() error { return s.write(ctx, key, enc) }); err != nil {
		return fmt.Errorf("writing %s/%s: %w", s.name, key, err)
	}
	if _, err := s.exec.Commit(ctx); err != nil {
		return fmt.Errorf("committing %s/%s: %w", s.name, key, err)
	}
	return nil
}

// write upserts enc under key, with its tag whenever the tag column exists.
func (s *Store) write(ctx context.Context, key string, enc domain.Encoded) error {
	if enc.Tag != domain.TagRaw {
		if err := s.Migrate(ctx); err != nil {
			return err
		}
		return s.upsert(ctx, key, enc, true)
	}
	if s.knownMigrated() {
		return s.upsert(ctx, key, enc, true)
	}

	if err := s.ensureTable(ctx); err != nil {
		return err
	}
	if err := s.upsert(ctx, key, enc, false); err != nil {
		return err
	}
	// The column may have been added by another handle; the row's tag must not survive.
	migrated, err := s.Migrated(ctx)
	if err != nil || !migrated {
		return err
	}
	return s.upsert(ctx, key, enc, true)
}

// upsert inserts key or updates its row in one statement.
func (s *Store) upsert(ctx context.Context, key string, enc domain.Encoded, tagged bool) error {
	var err error
	if tagged {
		_, err = s.exec.Execute(ctx, "INSERT INTO "+s.table+" (`key`, `value`, `"+domain.TagColumn+"`) VALUES (?, ?, ?)"+
			" ON CONFLICT(`key`) DO UPDATE SET `value`=excluded.`value`, `"+domain.TagColumn+"`=excluded.`"+domain.TagColumn+"`",
			key, enc.Text, int(enc.Tag))
	} else {
		_, err = s.exec.Execute(ctx, "INSERT INTO "+s.table+" (`key`, `value`) VALUES (?, ?)"+
			" ON CONFLICT(`key`) DO UPDATE SET `value`=excluded.`value`",
			key, enc.Text)
	}
	return err
}

// Delete removes key and commits. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.retryStale(func() error {
		if err := s.ensureTable(ctx); err != nil {
			return err
		}
		_, err := s.exec.Execute(ctx, "DELETE FROM "+s.table+" WHERE `key`=?", key)
		return err
	})
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", s.name, key, err)
	}
	if _, err := s.exec.Commit(ctx); err != nil {
		return fmt.Errorf("committing %s/%s: %w", s.name, key, err)
	}
	return nil
}

// KeyExists reports whether key is stored.
func (s *Store) KeyExists(ctx context.Context, key string) (bool, error) {
	rows, err := s.read(ctx, "SELECT 1 FROM "+s.table+" WHERE `key`=?", key)
	if err != nil {
		return false, fmt.Errorf("checking %s/%s: %w", s.name, key, err)
	}
	return len(rows) > 0, nil
}

// Keys returns the stored keys in no particular order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.read(ctx, "SELECT `key` FROM "+s.table)
	if err != nil {
		return nil, fmt.Errorf("listing keys of %s: %w", s.name, err)
	}
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, asText(row[0]))
	}
	return keys, nil
}

// read runs query against the table, creating it first.
func (s *Store) read(ctx context.Context, query string, args ...any) (rows []domain.Row, err error) {
	err = s.retryStale(func() error {
		if err := s.ensureTable(ctx); err != nil {
			return err
		}
		rows, err = s.exec.Execute(ctx, query, args...)
		return err
	})
	return rows, err
}

// Items reads every key and then each value individually.
// The result is not a snapshot: keys deleted in between are skipped.
func (s *Store) Items(ctx context.Context) (map[string]any, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}
	items := make(map[string]any, len(keys))
	for _, key := range keys {
		v, err := s.Get(ctx, key)
		if errors.Is(err, domain.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items[key] = v
	}
	return items, nil
}

// Values returns the stored values in no particular order.
func (s *Store) Values(ctx context.Context) ([]any, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(items))
	for _, v := range items {
		values = append(values, v)
	}
	return values, nil
}

// Len returns the number of stored keys.
func (s *Store) Len(ctx context.Context) (int, error) {
	rows, err := s.read(ctx, "SELECT COUNT(*) FROM "+s.table)
	if err != nil {
		return 0, fmt.Errorf("counting keys of %s: %w", s.name, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return asInt(rows[0][0])
}

// IsEmpty reports whether the namespace holds no keys.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.Len(ctx)
	return n == 0, err
}

// Drop removes the namespace table and commits.
// The handle stays usable and recreates an empty table on next use.
func (s *Store) Drop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.exec.Execute(ctx, "DROP TABLE IF EXISTS "+s.table); err != nil {
		return fmt.Errorf("dropping namespace %s: %w", s.name, err)
	}
	if _, err := s.exec.Commit(ctx); err != nil {
		return fmt.Errorf("committing drop of %s: %w", s.name, err)
	}
	s.created = false
	s.migrated = false
	s.logger.Debug("namespace dropped")
	return nil
}

// isStaleSchema reports whether err means the table or its tag column is gone,
// which happens when another handle dropped the namespace.
func isStaleSchema(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "has no column named")
}

// isAlreadyExists reports whether err is SQLite refusing to repeat idempotent DDL.
func isAlreadyExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}

func asText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case float64:
		return int(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected integer value %T", v)
	}
}
