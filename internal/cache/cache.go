// Package cache stores generated target text in SQLite, keyed by a digest of
// the source bytes and the mapping table that produced it.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agentic-research/cclua/api"
	_ "modernc.org/sqlite"
)

// keyVersion is mixed into every key; bump it when emitted text changes for
// the same input.
const keyVersion = "cclua/1"

// Cache is a translation cache backed by a single SQLite file. It is safe
// for concurrent use.
type Cache struct {
	db   *sql.DB
	path string
}

// Open opens or creates the cache at path, creating parent directories.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS translations (
		key TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		output TEXT NOT NULL,
		created INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Cache{db: db, path: path}, nil
}

// Key digests the source bytes together with the table's fingerprint.
func Key(src []byte, table api.Table) string {
	h := sha256.New()
	h.Write([]byte(keyVersion))
	h.Write([]byte{0})
	h.Write([]byte(table.Fingerprint()))
	h.Write([]byte{0})
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached output for key. ok is false on a miss.
func (c *Cache) Get(key string) (output string, ok bool, err error) {
	err = c.db.QueryRow(`SELECT output FROM translations WHERE key = ?`, key).Scan(&output)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup: %w", err)
	}
	return output, true, nil
}

// Put records output for key. source names the file it was generated from
// and is informational only.
func (c *Cache) Put(key, source, output string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO translations (key, source, output, created) VALUES (?, ?, ?, ?)`,
		key, source, output, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Len reports the number of cached translations.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Path returns the database file path.
func (c *Cache) Path() string { return c.path }

func (c *Cache) Close() error {
	return c.db.Close()
}
