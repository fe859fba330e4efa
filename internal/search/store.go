package search

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/codedash/internal/db"
)

// DefaultRecentLimit bounds the persisted recent-search list.
const DefaultRecentLimit = 20

// Store persists recent search terms to the local database.
type Store struct {
	db    *db.DB
	limit int
}

// NewStore creates a Store keeping at most limit recent terms (falls back
// to DefaultRecentLimit when non-positive).
func NewStore(database *db.DB, limit int) *Store {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &Store{db: database, limit: limit}
}

// AddRecent records term as the most recent search, trimming the list to
// the configured bound. Re-searching an existing term moves it to the front.
func (s *Store) AddRecent(ctx context.Context, term string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recent_searches (term, searched_at)
		VALUES (?, strftime('%Y-%m-%d %H:%M:%f','now'))
		ON CONFLICT(term) DO UPDATE SET searched_at = excluded.searched_at`,
		term,
	)
	if err != nil {
		return fmt.Errorf("recording search term: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM recent_searches WHERE term NOT IN (
			SELECT term FROM recent_searches ORDER BY searched_at DESC, term LIMIT ?
		)`, s.limit,
	)
	if err != nil {
		return fmt.Errorf("trimming recent searches: %w", err)
	}
	return nil
}

// Recent returns the persisted terms, most recent first.
func (s *Store) Recent(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT term FROM recent_searches ORDER BY searched_at DESC, term LIMIT ?`,
		s.limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent searches: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning recent search: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}
