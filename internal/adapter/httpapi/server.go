// Package httpapi exposes the service's HTTP surface: health and readiness
// probes, Prometheus metrics, and a synchronous analysis endpoint for ad-hoc
// soundings that bypass Kafka.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/convective-diagnostics/internal/domain"
	"github.com/couchcryptid/convective-diagnostics/internal/render"
)

// maxRequestBytes bounds ad-hoc analysis payloads. A full-resolution model
// sounding with a boundary grid stays well under this.
const maxRequestBytes = 1 << 20

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and analysis HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	analysis   domain.AnalysisConfig
}

// AnalyzeResponse is the payload of POST /v1/analyze: the raw result, its
// prose rendering, and a map overlay for any detected boundary.
type AnalyzeResponse struct {
	Result    domain.DiagnosticResult    `json:"result"`
	Narrative render.Narrative           `json:"narrative"`
	Boundary  *geojson.FeatureCollection `json:"boundary,omitempty"`
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /v1/analyze routes.
func NewServer(addr string, ready ReadinessChecker, analysis domain.AnalysisConfig, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:   logger,
		analysis: analysis,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)

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
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading request body"})
		return
	}

	req, err := domain.ParseSoundingRequest(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := domain.Analyze(&req.Profile, req.Grid, s.analysis)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidProfile) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	resp := AnalyzeResponse{
		Result:    res,
		Narrative: render.Build(res),
	}
	if res.Ingredients.Boundary.Present {
		resp.Boundary = render.BoundaryGeoJSON(res.Ingredients.Boundary)
	}

	s.logger.Debug("ad-hoc analysis served",
		"mode", res.Mode.String(), "tier", res.Tier.String())
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
