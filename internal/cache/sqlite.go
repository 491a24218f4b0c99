// Package cache persists generated docstrings between runs. The symbol index
// itself is never persisted; only the {symbol, generated docstring} pairs the
// operator still has to paste survive a restart.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"docforge/internal/index"
	"docforge/internal/pysrc"
)

// Entry pairs an indexed symbol with the docstring generated for it.
type Entry struct {
	Symbol    index.Symbol
	DocString string
}

type Store struct {
	db *sql.DB
}

// NewStore creates or opens the docstring database at path, creating parent
// directories and the schema as needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS docstrings (
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		file_path TEXT NOT NULL,
		normalized_source TEXT NOT NULL,
		has_doc INTEGER NOT NULL,
		doc_string TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (file_path, name, normalized_source)
	)`)
	return err
}

// Save upserts a batch of entries in one transaction.
func (s *Store) Save(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO docstrings
		(name, kind, file_path, normalized_source, has_doc, doc_string)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (file_path, name, normalized_source)
		DO UPDATE SET doc_string = excluded.doc_string`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		sym := e.Symbol
		if _, err := stmt.Exec(sym.Name, string(sym.Kind), sym.FilePath,
			sym.NormalizedSource, sym.HasDoc, e.DocString); err != nil {
			return fmt.Errorf("failed to save docstring for %s: %w", sym.Name, err)
		}
	}
	return tx.Commit()
}

// List returns every cached entry, oldest first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT name, kind, file_path, normalized_source,
		has_doc, doc_string FROM docstrings ORDER BY created_at, file_path, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.Symbol.Name, &kind, &e.Symbol.FilePath,
			&e.Symbol.NormalizedSource, &e.Symbol.HasDoc, &e.DocString); err != nil {
			return nil, err
		}
		e.Symbol.Kind = pysrc.Kind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes one cached entry.
func (s *Store) Delete(e Entry) error {
	_, err := s.db.Exec(`DELETE FROM docstrings
		WHERE file_path = ? AND name = ? AND normalized_source = ?`,
		e.Symbol.FilePath, e.Symbol.Name, e.Symbol.NormalizedSource)
	return err
}

// Count returns the number of cached docstrings.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM docstrings`).Scan(&n)
	return n, err
}
