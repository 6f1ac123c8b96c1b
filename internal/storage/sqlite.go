// Package storage persists networks, publications, and citation edges in
// SQLite.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPubFields contains the standard field list for publication SELECTs.
const selectPubFields = `id, network_id, title, author, year, url, pdf_path,
	network_status, cites_calculated, cited_by_calculated, created_at`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS networks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			owner TEXT NOT NULL,
			created_at TEXT
		);

		-- A publication belongs to exactly one network; deleting the
		-- network removes its publications and their edges.
		CREATE TABLE IF NOT EXISTS publications (
			id TEXT PRIMARY KEY,
			network_id TEXT NOT NULL REFERENCES networks(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			author TEXT,
			year TEXT,
			url TEXT,
			pdf_path TEXT,
			network_status TEXT NOT NULL,
			cites_calculated INTEGER NOT NULL DEFAULT 0,
			cited_by_calculated INTEGER NOT NULL DEFAULT 0,
			created_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_publications_network ON publications(network_id);
		CREATE INDEX IF NOT EXISTS idx_publications_title ON publications(network_id, title);

		-- Directed edges, set semantics: at most one edge per ordered pair.
		CREATE TABLE IF NOT EXISTS citations (
			citing_id TEXT NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
			cited_id TEXT NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
			PRIMARY KEY (citing_id, cited_id)
		);

		CREATE INDEX IF NOT EXISTS idx_citations_citing ON citations(citing_id);
		CREATE INDEX IF NOT EXISTS idx_citations_cited ON citations(cited_id);
	`

	_, err := db.Exec(schema)
	return err
}
