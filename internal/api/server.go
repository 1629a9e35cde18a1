// Package api hosts the ops HTTP server: health probes, Prometheus scraping,
// and a harvest status snapshot.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/adpillai/hcp-harvester/internal/metrics"
)

// StatusFunc returns the current harvest progress snapshot.
type StatusFunc func() map[string]any

// Server is the operator-facing HTTP endpoint. It never participates in
// harvesting; shutting it down has no effect on a running harvest.
type Server struct {
	router chi.Router
	http   *http.Server
	logger *zap.Logger
}

// NewServer builds the ops server on the given port.
func NewServer(port int, status StatusFunc, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		snapshot := map[string]any{}
		if status != nil {
			snapshot = status()
		}
		writeJSON(w, http.StatusOK, snapshot)
	})

	return &Server{
		router: r,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the router for use in tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("ops server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ops server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
