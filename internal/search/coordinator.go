// Package search turns raw keystroke input into rate-limited query
// executions against the backend search endpoint.
package search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/codedash/internal/notify"
	"github.com/ziadkadry99/codedash/internal/resource"
)

// State describes what the coordinator currently has to show.
type State string

const (
	StateIdle    State = "idle"    // no query, nothing displayed
	StatePending State = "pending" // a query is debouncing or executing
	StateLoaded  State = "loaded"  // results hold the latest response
	StateFailed  State = "failed"  // the latest query errored
)

const (
	// DefaultQuietPeriod is how long input must pause before a query runs.
	DefaultQuietPeriod = 300 * time.Millisecond
	// DefaultMinQueryLen is the shortest text worth querying for.
	DefaultMinQueryLen = 2
)

// Searcher executes a search query against the backend.
type Searcher interface {
	Search(ctx context.Context, query string) ([]resource.SearchResult, error)
}

// RecentStore records executed search terms. May be nil.
type RecentStore interface {
	AddRecent(ctx context.Context, term string) error
}

// Coordinator debounces keystrokes into query executions. Each execution
// carries a generation number; a completion older than the last applied one
// is discarded, so a slow stale response can never clobber fresher results.
type Coordinator struct {
	searcher Searcher
	recent   RecentStore
	notifier notify.Notifier
	window   time.Duration
	minLen   int

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     int // generation of the most recently started execution
	applied int // generation of the most recently applied completion
	query   string
	results []resource.SearchResult
	state   State
}

// NewCoordinator creates a Coordinator. window and minLen fall back to the
// defaults when non-positive; recent may be nil.
func NewCoordinator(searcher Searcher, recent RecentStore, notifier notify.Notifier, window time.Duration, minLen int) *Coordinator {
	if window <= 0 {
		window = DefaultQuietPeriod
	}
	if minLen <= 0 {
		minLen = DefaultMinQueryLen
	}
	return &Coordinator{
		searcher: searcher,
		recent:   recent,
		notifier: notifier,
		window:   window,
		minLen:   minLen,
		state:    StateIdle,
	}
}

// OnInput feeds one keystroke's worth of text into the coordinator. Text
// shorter than the minimum length clears any pending query and displayed
// results; anything else (re)schedules an execution after the quiet period.
func (c *Coordinator) OnInput(text string) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if len(text) < c.minLen {
		c.pending = ""
		c.query = ""
		c.results = nil
		c.state = StateIdle
		return
	}

	c.pending = text
	c.timer = time.AfterFunc(c.window, c.fire)
}

// fire runs when the quiet period elapses without further input.
func (c *Coordinator) fire() {
	c.mu.Lock()
	text := c.pending
	c.pending = ""
	c.timer = nil
	if text == "" {
		c.mu.Unlock()
		return
	}
	c.seq++
	gen := c.seq
	c.query = text
	c.state = StatePending
	c.mu.Unlock()

	c.execute(gen, text)
}

// Flush executes any pending query immediately instead of waiting out the
// quiet period. Useful when the user presses enter.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	if c.timer == nil || !c.timer.Stop() {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()
	c.fire()
}

// execute issues the query and applies its result unless a newer execution
// has already been applied.
func (c *Coordinator) execute(gen int, text string) {
	if c.recent != nil {
		if err := c.recent.AddRecent(context.Background(), text); err != nil {
			log.Printf("search: recording recent term: %v", err)
		}
	}

	results, err := c.searcher.Search(context.Background(), text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen < c.applied {
		// A newer query already completed; this response is stale.
		return
	}
	c.applied = gen

	if err != nil {
		log.Printf("search: %q: %v", text, err)
		c.results = nil
		c.state = StateFailed
		if c.notifier != nil {
			c.notifier.Notify("Search failed: "+err.Error(), notify.SeverityError)
		}
		return
	}

	c.results = results
	c.state = StateLoaded
}

// CurrentQuery returns the text of the most recent executed or executing query.
func (c *Coordinator) CurrentQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Results returns the currently displayed result set.
func (c *Coordinator) Results() []resource.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

// CurrentState returns the coordinator's display state.
func (c *Coordinator) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
