package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Register driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// Init opens the database and runs migrations.
func Init(path string) (*DB, error) {
	if path == "" {
		path = MemoryPath
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// A :memory: database lives per connection, so there must be exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	d := &DB{db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return d, nil
}

func (d *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sections (
			language TEXT NOT NULL,
			section TEXT NOT NULL,
			lang_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			description TEXT,
			PRIMARY KEY (language, section)
		);`,
		`CREATE TABLE IF NOT EXISTS examples (
			language TEXT NOT NULL,
			section TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT,
			explanation TEXT,
			code TEXT,
			PRIMARY KEY (language, section, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sections_order ON sections(lang_position, position);`,
	}

	for _, q := range queries {
		if _, err := d.Exec(q); err != nil {
			return fmt.Errorf("query failed: %s: %w", q, err)
		}
	}
	return nil
}
