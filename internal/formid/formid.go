// Package formid implements the FormID Index (§4.3): a persistent
// key-value lookup from (formid_hex, plugin_name) to a descriptive record
// string, backed by a per-edition SQLite table with an in-process
// hit/miss cache.
package formid

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// Index is a handle onto one FormID Index file. A single Index is either
// opened read-only for concurrent queries during a scan, or opened for
// exclusive ingest — never both at once (§4.3 "Concurrency").
type Index struct {
	db       *sql.DB
	path     string
	edition  string
	readOnly bool

	cacheMu sync.RWMutex
	cache   map[formidKey]cacheEntry
}

type formidKey struct {
	formid string
	plugin string
}

type cacheEntry struct {
	entry string
	hit   bool
}

func tableName(edition string) string {
	return "formid_" + strings.ToLower(edition)
}

// Create initializes a schema containing one table per game edition, with
// the (formid, plugin, entry) triple and secondary indexes on the formid and
// plugin columns (§4.3). Create is idempotent: it overwrites an existing file.
func Create(path string, editions []string) error {
	if err := removeIfExists(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening formid index %s: %w", path, err)
	}
	defer db.Close()

	for _, edition := range editions {
		table := tableName(edition)
		stmts := []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				formid TEXT NOT NULL,
				plugin TEXT NOT NULL,
				entry  TEXT NOT NULL,
				PRIMARY KEY (formid, plugin)
			)`, table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_formid ON %s(formid)`, table, table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_plugin ON %s(plugin)`, table, table),
		}
		for _, stmt := range stmts {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("creating schema for %s: %w", edition, err)
			}
		}
	}
	return nil
}

// Open opens an existing FormID Index. readOnly should be true for scan-time
// queries (multi-reader) and false for ingest (single-writer).
func Open(path, edition string, readOnly bool) (*Index, error) {
	dsn := path
	if readOnly {
		dsn = path + "?mode=ro"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening formid index %s: %w", path, err)
	}
	return &Index{
		db:       db,
		path:     path,
		edition:  edition,
		readOnly: readOnly,
		cache:    make(map[formidKey]cacheEntry),
	}, nil
}

// Close releases the underlying database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Normalize upper-cases a formid hex string and lower-cases a plugin name,
// the canonical form every row and query uses (§4.3).
func Normalize(formidHex, plugin string) (string, string) {
	return strings.ToUpper(strings.TrimSpace(formidHex)), strings.ToLower(strings.TrimSpace(plugin))
}

// Get looks up (formid, plugin), normalizing both inputs. Both hits and
// misses are cached for the lifetime of the Index handle (§4.3).
func (idx *Index) Get(formidHex, plugin string) (string, bool) {
	formidHex, plugin = Normalize(formidHex, plugin)
	key := formidKey{formid: formidHex, plugin: plugin}

	idx.cacheMu.RLock()
	if cached, ok := idx.cache[key]; ok {
		idx.cacheMu.RUnlock()
		return cached.entry, cached.hit
	}
	idx.cacheMu.RUnlock()

	row := idx.db.QueryRow(
		fmt.Sprintf(`SELECT entry FROM %s WHERE formid = ? AND plugin = ?`, tableName(idx.edition)),
		formidHex, plugin,
	)
	var entry string
	err := row.Scan(&entry)
	hit := err == nil

	idx.cacheMu.Lock()
	idx.cache[key] = cacheEntry{entry: entry, hit: hit}
	idx.cacheMu.Unlock()

	return entry, hit
}
