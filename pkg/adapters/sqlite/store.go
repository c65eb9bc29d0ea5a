// Package sqlite provides a SQLite-backed document store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/urakawa/pkg/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store persists documents in a single SQLite table.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (creating if needed) the database at path. The special path
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := ":memory:"
	if path != dsn {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts the document.
func (s *Store) Save(ctx context.Context, id string, doc []byte) error {
	if err := ports.ValidateDocumentID(id); err != nil {
		return err
	}
	if doc == nil {
		doc = []byte{}
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO documents (id, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		id, doc, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save document %s: %w", id, err)
	}
	return nil
}

// Load reads the document body.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	var body []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT body FROM documents WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}
	return body, nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

// List returns the stored IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdatedAt returns when the document was last saved.
func (s *Store) UpdatedAt(ctx context.Context, id string) (time.Time, error) {
	var millis int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT updated_at FROM documents WHERE id = ?`, id).Scan(&millis)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ports.ErrDocumentNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load document %s: %w", id, err)
	}
	return time.UnixMilli(millis).UTC(), nil
}
