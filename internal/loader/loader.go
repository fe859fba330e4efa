// Package loader orchestrates resource synchronization with the remote
// analysis API: it coalesces concurrent fetches for the same kind, serves
// fresh cache hits without touching the network, and converts fetch
// failures into notifications instead of errors.
package loader

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/ziadkadry99/codedash/internal/cache"
	"github.com/ziadkadry99/codedash/internal/notify"
	"github.com/ziadkadry99/codedash/internal/resource"
)

// Fetcher retrieves a resource collection from the backend.
type Fetcher interface {
	FetchCollection(ctx context.Context, kind resource.Kind) ([]resource.Item, error)
}

// Loader owns the resource cache, the in-flight set, and the published
// collections the presentation layer reads. All mutation of those three
// happens here; no other component writes to them.
type Loader struct {
	fetcher  Fetcher
	cache    *cache.Cache
	inflight *cache.InFlightSet
	notifier notify.Notifier

	mu          sync.RWMutex
	collections map[resource.Kind][]resource.Item
}

// New creates a Loader around the given fetcher, cache, and notifier.
func New(fetcher Fetcher, c *cache.Cache, notifier notify.Notifier) *Loader {
	return &Loader{
		fetcher:     fetcher,
		cache:       c,
		inflight:    cache.NewInFlightSet(),
		notifier:    notifier,
		collections: make(map[resource.Kind][]resource.Item),
	}
}

// Load synchronizes the collection for kind. If another load for the same
// kind is already in flight, it returns immediately and emits nothing: the
// in-progress load's completion will update the shared state. A fresh cache
// entry is served without a network round trip. Otherwise the collection is
// fetched; on success the cache and published state are replaced wholesale,
// on failure the prior cache entry (if any) stays as last known good.
//
// Failures never propagate to the caller; they surface as error notices.
// There is no automatic retry: a later Load for the same kind re-enters
// this same sequence.
func (l *Loader) Load(ctx context.Context, kind resource.Kind) {
	if !l.inflight.TryBegin(kind) {
		return
	}
	defer l.inflight.End(kind)

	if l.cache.IsFresh(kind) {
		if e, ok := l.cache.Get(kind); ok {
			l.publish(kind, e.Payload)
		}
		return
	}

	items, err := l.fetcher.FetchCollection(ctx, kind)
	if err != nil {
		log.Printf("loader: %s: %v", kind, err)
		l.notifier.Notify(fmt.Sprintf("Failed to load %s: %v", kind, err), notify.SeverityError)
		return
	}

	l.cache.Put(kind, items)
	l.publish(kind, items)
	l.notifier.Notify(fmt.Sprintf("Loaded %d %s", len(items), kind), notify.SeveritySuccess)
}

// publish replaces the consumer-visible collection for kind.
func (l *Loader) publish(kind resource.Kind, items []resource.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.collections[kind] = items
}

// Collection returns the published collection for kind. The returned slice
// is shared and must be treated as read-only.
func (l *Loader) Collection(kind resource.Kind) []resource.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.collections[kind]
}

// GetCached returns the raw cache entry for kind, bypassing freshness.
func (l *Loader) GetCached(kind resource.Kind) (cache.Entry, bool) {
	return l.cache.Get(kind)
}

// InvalidateAll clears every cache entry. Published collections are kept:
// the display holds its last known good data until the next Load replaces it.
func (l *Loader) InvalidateAll() {
	l.cache.InvalidateAll()
}

// InFlight reports whether a load for kind is currently running.
func (l *Loader) InFlight(kind resource.Kind) bool {
	return l.inflight.Contains(kind)
}
