package cache

import (
	"sync"

	"github.com/ziadkadry99/codedash/internal/resource"
)

// InFlightSet tracks which resource kinds currently have an outstanding
// fetch. It guarantees at most one logical fetch per kind: callers that
// lose the TryBegin race skip their fetch entirely rather than waiting
// for or duplicating the winner's request.
type InFlightSet struct {
	mu     sync.Mutex
	active map[resource.Kind]struct{}
}

// NewInFlightSet creates an empty in-flight set.
func NewInFlightSet() *InFlightSet {
	return &InFlightSet{active: make(map[resource.Kind]struct{})}
}

// TryBegin claims kind for fetching. It returns false without side effects
// if a fetch for kind is already in flight.
func (s *InFlightSet) TryBegin(kind resource.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[kind]; ok {
		return false
	}
	s.active[kind] = struct{}{}
	return true
}

// End releases the claim on kind. Releasing an unclaimed kind is a no-op.
func (s *InFlightSet) End(kind resource.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, kind)
}

// Contains reports whether a fetch for kind is currently in flight.
func (s *InFlightSet) Contains(kind resource.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[kind]
	return ok
}
