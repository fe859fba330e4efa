package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ziadkadry99/codedash/internal/db"
)

func setupTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database, limit)
}

func TestAddRecentAndList(t *testing.T) {
	store := setupTestStore(t, 10)
	ctx := context.Background()

	for _, term := range []string{"handler", "router", "cache"} {
		if err := store.AddRecent(ctx, term); err != nil {
			t.Fatalf("AddRecent(%q): %v", term, err)
		}
		// Timestamps have millisecond resolution; keep insert order distinct.
		time.Sleep(5 * time.Millisecond)
	}

	terms, err := store.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	want := []string{"cache", "router", "handler"}
	if len(terms) != len(want) {
		t.Fatalf("terms = %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("terms[%d] = %q, want %q", i, terms[i], want[i])
		}
	}
}

func TestAddRecentDeduplicates(t *testing.T) {
	store := setupTestStore(t, 10)
	ctx := context.Background()

	if err := store.AddRecent(ctx, "loader"); err != nil {
		t.Fatalf("AddRecent: %v", err)
	}
	if err := store.AddRecent(ctx, "loader"); err != nil {
		t.Fatalf("AddRecent again: %v", err)
	}

	terms, err := store.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(terms) != 1 {
		t.Fatalf("terms = %v, want a single deduplicated entry", terms)
	}
}

func TestRecentTrimsToLimit(t *testing.T) {
	store := setupTestStore(t, 3)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		if err := store.AddRecent(ctx, fmt.Sprintf("term-%d", i)); err != nil {
			t.Fatalf("AddRecent: %v", err)
		}
	}

	terms, err := store.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(terms) != 3 {
		t.Fatalf("kept %d terms, want 3", len(terms))
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM recent_searches").Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 3 {
		t.Errorf("table holds %d rows, want trimmed to 3", count)
	}
}
