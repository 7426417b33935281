package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS entries_expires_at ON entries(expires_at);
`

// SQLiteCache persists entries in a SQLite database file.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenSQLite opens (creating if needed) the cache database at path with
// WAL journaling. ttl is the default entry lifetime.
func OpenSQLite(ctx context.Context, path string, ttl time.Duration) (*SQLiteCache, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database %q: %w", path, err)
	}
	// one writer at a time; concurrent domain workers share the handle
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}

	c := &SQLiteCache{db: db, ttl: ttl}
	// pruning is best effort; a failure only leaves dead rows behind
	if n, err := c.Prune(ctx); err == nil && n > 0 {
		slog.Debug("pruned expired cache entries", "count", n)
	}
	return c, nil
}

// Close closes the database connection
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Get returns a live entry.
func (c *SQLiteCache) Get(key string) ([]byte, bool) {
	var value []byte
	// expired rows stay on disk until the next Prune but are never returned
	err := c.db.QueryRow(
		`SELECT value FROM entries WHERE key = ? AND expires_at > ?`,
		key, time.Now().UnixNano(),
	).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Debug("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

// Set inserts or replaces an entry; a zero ttl uses the default lifetime.
func (c *SQLiteCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	_, err := c.db.Exec(
		`INSERT INTO entries (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, time.Now().Add(ttl).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete removes an entry.
func (c *SQLiteCache) Delete(key string) error {
	if _, err := c.db.Exec(`DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *SQLiteCache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Prune deletes expired entries and reports how many were removed.
func (c *SQLiteCache) Prune(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM entries WHERE expires_at <= ?`, time.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return res.RowsAffected()
}
