package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/madhouse/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ModelInfo is the JSON form of a registered model.
type ModelInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewHandler exposes health, model listing and Prometheus metrics.
//
//	GET /health   {"status":"ok"}
//	GET /models   [{"name":...,"description":...}]
//	GET /metrics  Prometheus text format from gatherer
func NewHandler(reg *registry.Registry, gatherer prometheus.Gatherer, version string) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok", "version": version})
	})
	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		models := reg.List()
		out := make([]ModelInfo, len(models))
		for i, m := range models {
			out[i] = ModelInfo{Name: m.Name, Description: m.Description}
		}
		writeJSON(w, out)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Server serves a handler in the background for the lifetime of a run.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
	errs   chan error
}

// Start listens on addr and serves h until Shutdown.
func Start(addr string, h http.Handler, logger *slog.Logger) *Server {
	s := &Server{
		srv:    &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second},
		logger: logger,
		errs:   make(chan error, 1),
	}
	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
			s.errs <- err
		}
		close(s.errs)
	}()
	return s
}

// Shutdown stops the server, waiting up to five seconds for open requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown did not complete", "error", err)
		return s.srv.Close()
	}
	return <-s.errs
}
