package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danmuck/petty/internal/terms"
	_ "modernc.org/sqlite"
)

// OptionName is the options row that holds the encoded mapping.
const OptionName = "pats_terms"

// SQLite keeps the mapping as one JSON value in an options table.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens the options database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, path: path}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS options (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLite) Name() string { return "sqlite" }

// Path returns the database path.
func (s *SQLite) Path() string { return s.path }

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load(ctx context.Context) (terms.Mapping, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, OptionName).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return terms.Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", OptionName, err)
	}
	var m terms.Mapping
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", OptionName, err)
	}
	return m.Normalize(), nil
}

func (s *SQLite) Save(ctx context.Context, m terms.Mapping) error {
	raw, err := json.Marshal(m.Normalize())
	if err != nil {
		return fmt.Errorf("encode %s: %w", OptionName, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO options (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		OptionName, string(raw))
	if err != nil {
		return fmt.Errorf("save %s: %w", OptionName, err)
	}
	return nil
}
