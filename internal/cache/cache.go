package cache

import (
	"sync"
	"time"

	"github.com/ziadkadry99/codedash/internal/resource"
)

// Entry holds the last successfully fetched payload for one resource kind.
// Cached slices are treated as immutable; callers must not modify them.
type Entry struct {
	Payload   []resource.Item
	FetchedAt time.Time
}

// DefaultWindows are the per-kind freshness windows. Files and classes turn
// over faster in practice, so they expire sooner than functions and services.
var DefaultWindows = map[resource.Kind]time.Duration{
	resource.KindFiles:     10 * time.Second,
	resource.KindClasses:   10 * time.Second,
	resource.KindFunctions: 30 * time.Second,
	resource.KindServices:  30 * time.Second,
}

// Cache stores one entry per resource kind, replaced wholesale on every
// successful fetch. Absence of an entry is a normal state: it means that
// kind has never loaded successfully.
type Cache struct {
	mu      sync.RWMutex
	entries map[resource.Kind]Entry
	windows map[resource.Kind]time.Duration
	now     func() time.Time
}

// New creates a Cache with the given per-kind freshness windows. Kinds
// missing from windows fall back to DefaultWindows.
func New(windows map[resource.Kind]time.Duration) *Cache {
	merged := make(map[resource.Kind]time.Duration, len(DefaultWindows))
	for k, w := range DefaultWindows {
		merged[k] = w
	}
	for k, w := range windows {
		if w > 0 {
			merged[k] = w
		}
	}
	return &Cache{
		entries: make(map[resource.Kind]Entry),
		windows: merged,
		now:     time.Now,
	}
}

// Get returns the entry for kind, if one exists.
func (c *Cache) Get(kind resource.Kind) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[kind]
	return e, ok
}

// Put stores payload as the entry for kind, stamped with the current time.
// Any prior entry is overwritten unconditionally.
func (c *Cache) Put(kind resource.Kind, payload []resource.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[kind] = Entry{Payload: payload, FetchedAt: c.now()}
}

// IsFresh reports whether kind has an entry younger than its freshness
// window. An absent entry is never fresh.
func (c *Cache) IsFresh(kind resource.Kind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[kind]
	if !ok {
		return false
	}
	return c.now().Sub(e.FetchedAt) < c.windows[kind]
}

// InvalidateAll drops every entry. Used by the manual refresh action.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[resource.Kind]Entry)
}

// Window returns the freshness window configured for kind.
func (c *Cache) Window(kind resource.Kind) time.Duration {
	return c.windows[kind]
}
