package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallion1/tripgest/internal/backend"
	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/pipeline"
)

// Server is the HTTP API server for tripgest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	stats        *backend.LatencyStats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil when
// the backend is mocked.
func NewServer(orch *pipeline.Orchestrator, stats *backend.LatencyStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		stats:        stats,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.TripgestAPIKey, s.log))

		r.Post("/api/parse", s.handleParse)
		r.Post("/api/parse/upload", s.handleParseUpload)

		r.Post("/api/plan", s.handlePlan)
		r.Post("/api/plan/async", s.handlePlanAsync)
		r.Get("/api/plan/{jobID}/status", s.handlePlanStatus)

		r.Get("/api/itineraries", s.handleListItineraries)
		r.Get("/api/itineraries/{id}", s.handleGetItinerary)
		r.Delete("/api/itineraries/{id}", s.handleDeleteItinerary)
		r.Get("/api/itineraries/{id}/export", s.handleExportItinerary)

		r.Get("/api/stats/backend", s.handleBackendStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
