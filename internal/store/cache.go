// Package store provides a SQLite-backed cache for fetched feed results.
// Cached failures are replayed just like successes until they expire, which
// keeps a dead feed from being re-requested on every refresh.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studytrack/internal/feed"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed feed result caching, keyed by URL.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	c := &Cache{db: db}
	// Expired rows can never serve a Get again, so sweep them now.
	_ = c.Purge(feed.CacheTTL)
	return c, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached result for url if it is younger than maxAge.
// The second return is the recorded fetch error message ("" on success);
// ok is false on a miss or an expired entry.
func (c *Cache) Get(url string, maxAge time.Duration) (items []feed.Item, fetchErr string, ok bool, err error) {
	var fetchedAt string
	row := c.db.QueryRow("SELECT fetched_at, error FROM feed_fetches WHERE url = ?", url)
	if err := row.Scan(&fetchedAt, &fetchErr); err != nil {
		if err == sql.ErrNoRows {
			return nil, "", false, nil
		}
		return nil, "", false, err
	}

	at, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || time.Since(at) > maxAge {
		return nil, "", false, nil
	}

	rows, err := c.db.Query(
		"SELECT title, link, published FROM feed_items WHERE url = ? ORDER BY position", url)
	if err != nil {
		return nil, "", false, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var it feed.Item
		if err := rows.Scan(&it.Title, &it.Link, &it.Published); err != nil {
			return nil, "", false, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, "", false, err
	}

	return items, fetchErr, true, nil
}

// Put records a fetch result (success or failure) for url, replacing any
// prior entry.
func (c *Cache) Put(url string, items []feed.Item, fetchErr string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO feed_fetches (url, fetched_at, error) VALUES (?, ?, ?)",
		url, now, fetchErr,
	); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM feed_items WHERE url = ?", url); err != nil {
		return err
	}
	for i, it := range items {
		if _, err := tx.Exec(
			"INSERT INTO feed_items (url, position, title, link, published) VALUES (?, ?, ?, ?, ?)",
			url, i, it.Title, it.Link, it.Published,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Purge drops all cached fetches older than maxAge.
func (c *Cache) Purge(maxAge time.Duration) error {
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339)
	_, err := c.db.Exec("DELETE FROM feed_fetches WHERE fetched_at < ?", cutoff)
	return err
}
