package sections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziadkadry99/codedash/internal/db"
)

// lastSectionKey is the ui_state key holding the last visited section id.
const lastSectionKey = "last_section"

// Store persists section state to the local database.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// SaveLastSection records id as the most recently visited section.
func (s *Store) SaveLastSection(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ui_state (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		lastSectionKey, id,
	)
	if err != nil {
		return fmt.Errorf("saving last section: %w", err)
	}
	return nil
}

// LastSection returns the persisted section id, or "" if none is stored.
func (s *Store) LastSection(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM ui_state WHERE key = ?`, lastSectionKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading last section: %w", err)
	}
	return value, nil
}
