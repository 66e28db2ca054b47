// Package postgres stores case notes in a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "embed"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// Store implements ports.NoteStore over database/sql with the lib/pq driver.
type Store struct {
	DB *sql.DB
}

// Open connects to dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	s := NewStore(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing connection. The caller owns its lifecycle.
func NewStore(db *sql.DB) *Store { return &Store{DB: db} }

var _ ports.NoteStore = (*Store)(nil)

// Migrate creates the notes table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to migrate notes schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Save upserts the blob.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO case_notes (key, body, updated_at)
         VALUES ($1, $2, now())
         ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}

// Load returns the blob stored under key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := s.DB.QueryRowContext(ctx, `SELECT body FROM case_notes WHERE key = $1`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	return body, nil
}
