// Package httpapi is the service's HTTP surface: health and metrics
// endpoints, the glossary, the NWS proxy routes, soundings, and the
// advection solvers.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/nimbusworks/wxmodel/internal/config"
	"github.com/nimbusworks/wxmodel/internal/observability"
	"github.com/nimbusworks/wxmodel/internal/sounding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ReadyAlways is the readiness checker for deployments with no background
// workers to wait on.
type ReadyAlways struct{}

// CheckReadiness always reports ready.
func (ReadyAlways) CheckReadiness(context.Context) error { return nil }

// WeatherUpstream is the slice of the NWS client the proxy routes use.
type WeatherUpstream interface {
	Points(ctx context.Context, lat, lon float64) (json.RawMessage, error)
	Forecast(ctx context.Context, forecastURL string) (json.RawMessage, error)
	ForecastHourly(ctx context.Context, forecastURL string) (json.RawMessage, error)
	StationsObservations(ctx context.Context, stationsURL string) (json.RawMessage, error)
	ObservationLatest(ctx context.Context, stationID string) (json.RawMessage, error)
	Gridpoint(ctx context.Context, gridID string, gridX, gridY int) (json.RawMessage, error)
	AlertsActive(ctx context.Context, zone string) (json.RawMessage, error)
	AlertsActiveByArea(ctx context.Context, area string) (json.RawMessage, error)
}

// SoundingProvider resolves sounding requests.
type SoundingProvider interface {
	Get(ctx context.Context, lat, lon float64, source string) sounding.Sounding
	Demo() sounding.Sounding
}

// Server routes API requests to the upstream adapters and the solvers.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	upstream   WeatherUpstream
	soundings  SoundingProvider
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the API server with all routes registered.
func NewServer(cfg *config.Config, upstream WeatherUpstream, soundings SoundingProvider, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mux:       mux,
		upstream:  upstream,
		soundings: soundings,
		logger:    logger,
		metrics:   metrics,
	}
	s.httpServer.Handler = corsMiddleware(cfg.CORSAllowedOrigins, s.requestMetrics(mux))

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/glossary", s.handleGlossary)
	mux.HandleFunc("GET /api/glossary/{term}", s.handleGlossaryTerm)
	mux.HandleFunc("GET /api/points", s.handlePoints)
	mux.HandleFunc("GET /api/forecast", s.handleForecast)
	mux.HandleFunc("GET /api/forecast/hourly", s.handleForecastHourly)
	mux.HandleFunc("GET /api/stations/observations", s.handleStationsObservations)
	mux.HandleFunc("GET /api/stations/{stationID}/observations/latest", s.handleObservationLatest)
	mux.HandleFunc("GET /api/gridpoints/{gridID}/{gridX}/{gridY}", s.handleGridpoint)
	mux.HandleFunc("GET /api/alerts/active", s.handleAlertsActive)
	mux.HandleFunc("GET /api/sounding", s.handleSounding)
	mux.HandleFunc("GET /api/physics/advection1d", s.handleAdvection1D)
	mux.HandleFunc("GET /api/physics/advection2d", s.handleAdvection2D)

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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"error": detail})
}
