// Package store provides SQLite-based persistence for repository index
// metadata: per-repo file counts and per-file content hashes, keyed by
// repository URL. The GitHub fetcher uses it to skip files whose content is
// unchanged between indexing runs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Index wraps an SQLite database holding repo snapshots.
type Index struct {
	conn *sql.DB
	path string
	mu   sync.RWMutex
}

// RepoRecord summarizes one indexed repository.
type RepoRecord struct {
	URL       string
	FileCount int
	IndexedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS repos (
	url        TEXT PRIMARY KEY,
	file_count INTEGER NOT NULL DEFAULT 0,
	indexed_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS repo_files (
	repo_url     TEXT NOT NULL REFERENCES repos(url) ON DELETE CASCADE,
	path         TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	PRIMARY KEY (repo_url, path)
);
`

// Open opens (or creates) the index database at path. Parent directories are
// created if needed. WAL mode is enabled for concurrent reads.
func Open(path string) (*Index, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Index{conn: conn, path: path}, nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.conn.Close()
}

// Repo returns the stored record for a repository URL, or nil if the repo
// has never been indexed.
func (ix *Index) Repo(url string) (*RepoRecord, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	row := ix.conn.QueryRow("SELECT url, file_count, indexed_at FROM repos WHERE url = ?", url)

	var rec RepoRecord
	var indexedAt int64
	if err := row.Scan(&rec.URL, &rec.FileCount, &indexedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query repo: %w", err)
	}
	rec.IndexedAt = time.Unix(indexedAt, 0)

	return &rec, nil
}

// FileHashes returns the stored path -> content hash map for a repository.
// An unindexed repo yields an empty map.
func (ix *Index) FileHashes(url string) (map[string]string, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	rows, err := ix.conn.Query("SELECT path, content_hash FROM repo_files WHERE repo_url = ?", url)
	if err != nil {
		return nil, fmt.Errorf("query file hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, fmt.Errorf("scan file hash: %w", err)
		}
		hashes[path] = hash
	}

	return hashes, rows.Err()
}

// SaveSnapshot replaces the stored snapshot for a repository with the given
// path -> content hash map, updating file count and indexed-at atomically.
func (ix *Index) SaveSnapshot(url string, hashes map[string]string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	tx, err := ix.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO repos (url, file_count, indexed_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(url) DO UPDATE SET file_count = excluded.file_count, indexed_at = excluded.indexed_at",
		url, len(hashes), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("upsert repo: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM repo_files WHERE repo_url = ?", url); err != nil {
		return fmt.Errorf("clear file hashes: %w", err)
	}

	for path, hash := range hashes {
		if _, err := tx.Exec(
			"INSERT INTO repo_files (repo_url, path, content_hash) VALUES (?, ?, ?)",
			url, path, hash,
		); err != nil {
			return fmt.Errorf("insert file hash: %w", err)
		}
	}

	return tx.Commit()
}

// Changed compares a current path -> hash map against the stored snapshot and
// returns the paths that are new or whose content hash differs, sorted.
func (ix *Index) Changed(url string, current map[string]string) ([]string, error) {
	stored, err := ix.FileHashes(url)
	if err != nil {
		return nil, err
	}

	var changed []string
	for path, hash := range current {
		if stored[path] != hash {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)

	return changed, nil
}
