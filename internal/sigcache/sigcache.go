// Package sigcache is a cross-run cache of decoded module-function
// signatures (spec §6's loader, concretized per SPEC_FULL.md §4.11): a
// .vclmod descriptor's parsed declarations are stored so that repeated
// compiles of an unchanged vmod directory skip the manifest parse (the
// loader still packs each declaration's signature blob with funbit).
// Entries are keyed by the sha256 of the descriptor file's bytes, so
// any edit invalidates its own entry without touching the rest of the
// cache. Grounded on the teacher's modernc.org/sqlite usage
// (internal/evaluator/builtins_sql.go) for the storage engine.
package sigcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/veloxcache/vclc/internal/modules"
)

// Cache wraps a SQLite database holding one row per descriptor-file
// content hash.
type Cache struct {
	db *sql.DB
}

// Open creates or attaches to the cache database at path (use
// "file::memory:" for a throwaway, process-local cache).
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sigcache: open %s: %w", path, err)
	}
	const ddl = `
CREATE TABLE IF NOT EXISTS signatures (
	hash TEXT PRIMARY KEY,
	decls_json BLOB NOT NULL
);`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sigcache: migrate: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// Hash returns the cache key for a descriptor file's raw bytes.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached decoded declarations for content's hash,
// or ok=false on a cache miss.
func (c *Cache) Lookup(content []byte) (decls []modules.StoredDecl, ok bool, err error) {
	row := c.db.QueryRow(`SELECT decls_json FROM signatures WHERE hash = ?`, Hash(content))
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	if err := json.Unmarshal(blob, &decls); err != nil {
		return nil, false, err
	}
	return decls, true, nil
}

// Store records the decoded declarations for content's hash, replacing
// any prior entry for the same hash.
func (c *Cache) Store(content []byte, decls []modules.StoredDecl) error {
	blob, err := json.Marshal(decls)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(
		`INSERT INTO signatures (hash, decls_json) VALUES (?, ?)
		 ON CONFLICT(hash) DO UPDATE SET decls_json = excluded.decls_json`,
		Hash(content), blob)
	return err
}
