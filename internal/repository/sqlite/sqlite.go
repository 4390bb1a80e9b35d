// Package sqlite implements repository.FixtureSource on top of SQLite.
//
// WHY SQLITE?
// The catalog's tables are tiny and read once at startup, so an embedded,
// single-file database is the natural "real" storage for them: operators can
// edit fixtures with the sqlite3 shell instead of rebuilding the binary.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite, so the binary needs no C toolchain
// and cross-compiles like any other Go program.
//
// The database is opened, migrated, optionally seeded, read once, and closed.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and serves fixture tables from it.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and creates the fixture tables if
// they do not exist yet.
//
// dbPath examples:
//   - "data/catalog.db" → file-based database
//   - ":memory:"        → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so the pool is
	// pinned to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the fixture tables.
//
// There are deliberately no FOREIGN KEY constraints: a category whose owner
// is missing, or a product whose category is missing, must load and render
// with a blank cell rather than be rejected.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id   INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			sex  TEXT NOT NULL CHECK (sex IN ('m', 'f'))
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id       INTEGER PRIMARY KEY,
			title    TEXT NOT NULL,
			icon     TEXT NOT NULL DEFAULT '',
			owner_id INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating categories table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id          INTEGER PRIMARY KEY,
			name        TEXT NOT NULL,
			category_id INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
	`)
	if err != nil {
		return fmt.Errorf("creating products table: %w", err)
	}

	return nil
}
