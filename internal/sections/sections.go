// Package sections tracks which dashboard section is visible and triggers
// resource loads as the user navigates.
package sections

import (
	"context"
	"log"
	"sync"

	"github.com/ziadkadry99/codedash/internal/resource"
)

// ID names a dashboard section.
type ID string

const (
	Overview      ID = "overview"
	Files         ID = "files"
	Classes       ID = "classes"
	Functions     ID = "functions"
	Services      ID = "services"
	Relationships ID = "relationships"
	Dependencies  ID = "dependencies"
	Layers        ID = "layers"
	Complexity    ID = "complexity"
	Domains       ID = "domains"
)

// validIDs is the set of recognized section ids.
var validIDs = map[ID]bool{
	Overview: true, Files: true, Classes: true, Functions: true,
	Services: true, Relationships: true, Dependencies: true,
	Layers: true, Complexity: true, Domains: true,
}

// dataKinds maps the four data-bearing sections to the resource kind that
// backs them.
var dataKinds = map[ID]resource.Kind{
	Files:     resource.KindFiles,
	Classes:   resource.KindClasses,
	Functions: resource.KindFunctions,
	Services:  resource.KindServices,
}

// KindFor returns the resource kind backing a data-bearing section.
func KindFor(id ID) (resource.Kind, bool) {
	k, ok := dataKinds[id]
	return k, ok
}

// ParseID validates a raw section id.
func ParseID(s string) (ID, bool) {
	id := ID(s)
	return id, validIDs[id]
}

// maxHistory bounds the navigation history.
const maxHistory = 10

// DataSource is the slice of the resource loader the controller needs.
type DataSource interface {
	Load(ctx context.Context, kind resource.Kind)
	Collection(kind resource.Kind) []resource.Item
}

// StateStore persists the last visited section between runs.
type StateStore interface {
	SaveLastSection(ctx context.Context, id string) error
	LastSection(ctx context.Context) (string, error)
}

// Controller is the section activation state machine. It owns the current
// section and a bounded visit history; nothing else mutates them.
type Controller struct {
	data      DataSource
	analytics *Analytics
	store     StateStore // nil disables persistence

	mu      sync.RWMutex
	current ID
	history []ID
}

// NewController creates a Controller starting at the persisted last section,
// or Overview when none is stored or the stored value is unrecognized.
// store and analytics may be nil.
func NewController(data DataSource, analytics *Analytics, store StateStore) *Controller {
	initial := Overview
	if store != nil {
		if raw, err := store.LastSection(context.Background()); err == nil && raw != "" {
			if id, ok := ParseID(raw); ok {
				initial = id
			}
		}
	}

	return &Controller{
		data:      data,
		analytics: analytics,
		store:     store,
		current:   initial,
		history:   []ID{initial},
	}
}

// Activate makes id the current section. Unrecognized ids are logged and
// ignored without touching any state. Activating a data-bearing section
// whose collection has not loaded yet triggers a load; the complexity and
// domains sections recompute their aggregates on every activation.
func (c *Controller) Activate(ctx context.Context, id ID) {
	if !validIDs[id] {
		log.Printf("sections: ignoring unknown section %q", id)
		return
	}

	c.mu.Lock()
	if id != c.current {
		c.history = append(c.history, id)
		if len(c.history) > maxHistory {
			c.history = c.history[len(c.history)-maxHistory:]
		}
	}
	c.current = id
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.SaveLastSection(ctx, string(id)); err != nil {
			log.Printf("sections: persisting last section: %v", err)
		}
	}

	c.enter(ctx, id)
}

// enter runs the side effects of landing on a section without touching
// the history. Shared by Activate and GoBack.
func (c *Controller) enter(ctx context.Context, id ID) {
	if kind, ok := dataKinds[id]; ok {
		// Only fetch if nothing has been published for this kind yet;
		// the loader's own freshness window covers everything else.
		if len(c.data.Collection(kind)) == 0 {
			c.data.Load(ctx, kind)
		}
		return
	}

	// The analytic sections are cheap aggregates over cached file data,
	// so they recompute unconditionally.
	if c.analytics != nil && (id == Complexity || id == Domains) {
		c.analytics.Refresh(c.data.Collection(resource.KindFiles))
	}
}

// GoBack pops the current section off the history and re-enters the one
// before it. It is a no-op when there is nothing to go back to.
func (c *Controller) GoBack(ctx context.Context) {
	c.mu.Lock()
	if len(c.history) <= 1 {
		c.mu.Unlock()
		return
	}
	c.history = c.history[:len(c.history)-1]
	id := c.history[len(c.history)-1]
	c.current = id
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.SaveLastSection(ctx, string(id)); err != nil {
			log.Printf("sections: persisting last section: %v", err)
		}
	}

	c.enter(ctx, id)
}

// Current returns the active section.
func (c *Controller) Current() ID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// History returns a copy of the visit history, oldest first.
func (c *Controller) History() []ID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ID, len(c.history))
	copy(out, c.history)
	return out
}

// Analytics exposes the controller's aggregate views.
func (c *Controller) Analytics() *Analytics {
	return c.analytics
}
