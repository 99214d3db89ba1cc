// Package api exposes the latest validation run report over HTTP for CI
// dashboards and artifact scrapers.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// Server represents the API server
type Server struct {
	router *mux.Router

	mu     sync.RWMutex
	report *types.RunReport
}

// NewServer creates a new API server instance
func NewServer() *Server {
	s := &Server{
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

// routes sets up the API routes
func (s *Server) routes() {
	s.router.HandleFunc("/api/v1/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/api/v1/report", s.latestReport).Methods("GET")
}

// SetReport publishes a run report. Reports are immutable once
// aggregated, so handing over the pointer is safe.
func (s *Server) SetReport(report *types.RunReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
}

// Handler returns the server's HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	log.Printf("Starting server on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		log.Printf("Failed to encode health check response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

// latestReport serves the most recent run report, 404 until a run has
// been published
func (s *Server) latestReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		http.Error(w, "no validation run recorded yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		log.Printf("Failed to encode report response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
