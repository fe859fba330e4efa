package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/codedash/internal/resource"
	"github.com/ziadkadry99/codedash/internal/sections"
)

// registerRoutes mounts the JSON API under /api.
func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/resources/{kind}", s.handleGetResources)
		r.Post("/resources/{kind}/load", s.handleLoadResources)
		r.Post("/refresh", s.handleRefresh)

		r.Get("/sections/current", s.handleCurrentSection)
		r.Get("/sections/history", s.handleSectionHistory)
		r.Post("/sections/activate", s.handleActivateSection)
		r.Post("/sections/back", s.handleGoBack)

		r.Get("/analytics/complexity", s.handleComplexity)
		r.Get("/analytics/domains", s.handleDomains)

		r.Get("/search", s.handleSearchState)
		r.Post("/search", s.handleSearchInput)
		r.Get("/search/recent", s.handleRecentSearches)

		r.Get("/stats", s.handleStats)
	})
}

// collectionResponse is the payload for a resource collection.
type collectionResponse struct {
	Kind     resource.Kind   `json:"kind"`
	Items    []resource.Item `json:"items"`
	InFlight bool            `json:"in_flight"`
}

func (s *Server) handleGetResources(w http.ResponseWriter, r *http.Request) {
	kind, ok := resource.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, "unknown resource kind", http.StatusNotFound)
		return
	}

	// Lazy load: a section can read its collection before anything has
	// triggered a fetch for it.
	if len(s.loader.Collection(kind)) == 0 {
		s.loader.Load(r.Context(), kind)
	}

	items := s.loader.Collection(kind)
	if items == nil {
		items = []resource.Item{}
	}
	writeJSON(w, http.StatusOK, collectionResponse{
		Kind:     kind,
		Items:    items,
		InFlight: s.loader.InFlight(kind),
	})
}

func (s *Server) handleLoadResources(w http.ResponseWriter, r *http.Request) {
	kind, ok := resource.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, "unknown resource kind", http.StatusNotFound)
		return
	}

	s.loader.Load(r.Context(), kind)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "loaded"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.loader.InvalidateAll()

	// Reload the data behind the section the user is looking at so the
	// refresh is visible immediately; other kinds reload lazily.
	if kind, ok := sections.KindFor(s.sections.Current()); ok {
		s.loader.Load(r.Context(), kind)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (s *Server) handleCurrentSection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]sections.ID{"current": s.sections.Current()})
}

func (s *Server) handleSectionHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]sections.ID{"history": s.sections.History()})
}

func (s *Server) handleActivateSection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, ok := sections.ParseID(body.ID)
	if !ok {
		http.Error(w, "unknown section id", http.StatusBadRequest)
		return
	}

	s.sections.Activate(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]sections.ID{"current": s.sections.Current()})
}

func (s *Server) handleGoBack(w http.ResponseWriter, r *http.Request) {
	s.sections.GoBack(r.Context())
	writeJSON(w, http.StatusOK, map[string]sections.ID{"current": s.sections.Current()})
}

func (s *Server) handleComplexity(w http.ResponseWriter, r *http.Request) {
	a := s.sections.Analytics()
	if a == nil {
		http.Error(w, "analytics not enabled", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a.Complexity())
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	a := s.sections.Analytics()
	if a == nil {
		http.Error(w, "analytics not enabled", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a.Domains())
}

// searchStateResponse mirrors what the search panel renders.
type searchStateResponse struct {
	Query   string                  `json:"query"`
	State   string                  `json:"state"`
	Results []resource.SearchResult `json:"results"`
}

func (s *Server) handleSearchState(w http.ResponseWriter, r *http.Request) {
	results := s.coordinator.Results()
	if results == nil {
		results = []resource.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchStateResponse{
		Query:   s.coordinator.CurrentQuery(),
		State:   string(s.coordinator.CurrentState()),
		Results: results,
	})
}

func (s *Server) handleSearchInput(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Q     string `json:"q"`
		Flush bool   `json:"flush"` // true when the user pressed enter
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.coordinator.OnInput(body.Q)
	if body.Flush {
		s.coordinator.Flush()
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	if s.recent == nil {
		writeJSON(w, http.StatusOK, map[string][]string{"terms": {}})
		return
	}

	terms, err := s.recent.Recent(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if terms == nil {
		terms = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"terms": terms})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		http.Error(w, "stats backend not configured", http.StatusServiceUnavailable)
		return
	}

	stats, err := s.stats.Stats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
