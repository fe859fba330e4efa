// Package gateway exposes the synchronization layer to the presentation
// layer over HTTP and streams notifications over WebSocket.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/codedash/internal/loader"
	"github.com/ziadkadry99/codedash/internal/notify"
	"github.com/ziadkadry99/codedash/internal/resource"
	"github.com/ziadkadry99/codedash/internal/search"
	"github.com/ziadkadry99/codedash/internal/sections"
)

// Config holds gateway configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// StatsFetcher retrieves aggregate counters from the backend.
type StatsFetcher interface {
	Stats(ctx context.Context) (*resource.Stats, error)
}

// Server wires the synchronization components behind a chi router.
type Server struct {
	cfg         Config
	loader      *loader.Loader
	sections    *sections.Controller
	coordinator *search.Coordinator
	recent      *search.Store
	stats       StatsFetcher
	notices     *notify.Channel
	router      chi.Router
	httpServer  *http.Server
}

// New creates a Server around the given components. recent and stats may
// be nil, in which case their endpoints report unavailability.
func New(cfg Config, l *loader.Loader, sc *sections.Controller, coord *search.Coordinator, recent *search.Store, stats StatsFetcher, notices *notify.Channel) *Server {
	s := &Server{
		cfg:         cfg,
		loader:      l,
		sections:    sc,
		coordinator: coord,
		recent:      recent,
		stats:       stats,
		notices:     notices,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.registerRoutes(r)
	r.Get("/ws/notifications", s.handleNotificationStream)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("gateway: listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
