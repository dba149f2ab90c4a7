package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SyncReporter is optionally implemented by readiness checkers that track
// sync cycles; when available, /readyz includes the last completion time.
type SyncReporter interface {
	LastSync() (time.Time, bool)
}

// SourceInfo describes the configured observation source. Served on
// /sourcez so operators can tell which observatory an instance syncs
// without inspecting its environment.
type SourceInfo struct {
	Observatory string   `json:"observatory"`
	Channels    []string `json:"channels"`
	DataType    string   `json:"data_type"`
	Interval    string   `json:"interval"`
	URLTemplate string   `json:"url_template"`
	SinkTopic   string   `json:"sink_topic"`
}

// Server exposes health, readiness, source, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	ready      ReadinessChecker
	source     SourceInfo
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /sourcez, and
// /metrics routes.
func NewServer(addr string, ready ReadinessChecker, source SourceInfo, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		ready:  ready,
		source: source,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /sourcez", s.handleSource)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}

	body := map[string]any{
		"status":      "ready",
		"observatory": s.source.Observatory,
	}
	if reporter, ok := s.ready.(SyncReporter); ok {
		if last, ok := reporter.LastSync(); ok {
			body["last_sync"] = last.Format(time.RFC3339)
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleSource(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.source)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
