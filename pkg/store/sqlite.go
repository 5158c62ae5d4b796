package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"syntaxsheet/pkg/db"
	"syntaxsheet/pkg/model"
)

// SQLiteStore implements SearchStore.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(d *db.DB) *SQLiteStore {
	return &SQLiteStore{db: d}
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// IndexCatalog replaces the index contents with cat.
func (s *SQLiteStore) IndexCatalog(ctx context.Context, cat *model.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM examples`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return err
	}

	secStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sections (language, section, lang_position, position, description) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer secStmt.Close()

	exStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO examples (language, section, position, title, explanation, code) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer exStmt.Close()

	examples := 0
	for li, name := range cat.Names() {
		def, _ := cat.Get(name)
		for si, key := range def.Sections.Keys() {
			sec, _ := def.Sections.Get(key)
			if _, err := secStmt.ExecContext(ctx, name, key, li, si, sec.Description); err != nil {
				return fmt.Errorf("failed to index section %s/%s: %w", name, key, err)
			}
			for ei, ex := range sec.Examples {
				var explanation sql.NullString
				if ex.HasExplanation() {
					explanation = sql.NullString{String: *ex.Explanation, Valid: true}
				}
				if _, err := exStmt.ExecContext(ctx, name, key, ei, ex.Title, explanation, ex.Code); err != nil {
					return fmt.Errorf("failed to index example %s/%s/%d: %w", name, key, ei, err)
				}
				examples++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index: %w", err)
	}
	slog.Debug("Search index built", "languages", cat.Len(), "examples", examples)
	return nil
}

// Search returns examples whose title, explanation, code or section
// description contains query, ignoring ASCII case, in catalog order.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.language, e.section, e.position, e.title
		FROM examples e
		JOIN sections s ON s.language = e.language AND s.section = e.section
		WHERE instr(lower(e.title), ?1) > 0
		   OR instr(lower(coalesce(e.explanation, '')), ?1) > 0
		   OR instr(lower(e.code), ?1) > 0
		   OR instr(lower(s.description), ?1) > 0
		ORDER BY s.lang_position, s.position, e.position
		LIMIT ?2`, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Language, &h.Section, &h.Example, &h.Title); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
