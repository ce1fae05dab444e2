// Package jpqlcache is an optional SQLite-backed cache of rewrite
// results, keyed by a content hash of the input query and options.
// The façade (jpqlrw) is fully correct and deterministic
// without it; a caller opts in explicitly by wrapping a facade call.
package jpqlcache

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Cache is a SQLite-backed key/value store of rewritten query text.
// SQLite only supports one writer at a time, so the connection pool is
// limited to a single connection.
type Cache struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at path and applies the
// rewrite-cache schema. Idempotent: safe to call against an existing
// database.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("jpqlcache: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("jpqlcache: connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("jpqlcache: apply schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached output for key, or ("", false, nil) on a
// cache miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	var output string
	err := c.db.QueryRowContext(ctx, `SELECT output FROM rewrites WHERE key = ?`, key).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("jpqlcache: get %s: %w", key, err)
	}
	return output, true, nil
}

// Put stores (or overwrites) the cached output for key, recording
// query for diagnostics and createdAt as the insertion's Unix
// timestamp (callers stamp this themselves since this package has no
// clock of its own).
func (c *Cache) Put(ctx context.Context, key, query, output string, createdAt int64) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO rewrites (key, query, output, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET output = excluded.output, created_at = excluded.created_at
	`, key, query, output, createdAt)
	if err != nil {
		return fmt.Errorf("jpqlcache: put %s: %w", key, err)
	}
	return nil
}

// Clear deletes every cached entry.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM rewrites`); err != nil {
		return fmt.Errorf("jpqlcache: clear: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT count(*) FROM rewrites`).Scan(&n); err != nil {
		return 0, fmt.Errorf("jpqlcache: count: %w", err)
	}
	return n, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("jpqlcache: execute %q: %w", pragma, err)
		}
	}
	return nil
}
