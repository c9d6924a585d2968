package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather service.
type Metrics struct {
	// HTTP surface.
	HTTPRequests        *prometheus.CounterVec   // labels: route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	// Upstream adapters (NWS proxy, Wyoming sounding fetch).
	UpstreamRequests *prometheus.CounterVec   // labels: service={nws,wyoming}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: service
	CacheLookups     *prometheus.CounterVec   // labels: cache={nws,sounding}, result={hit,miss}

	// Simulation engines.
	SimulationRuns     *prometheus.CounterVec   // labels: model={advection1d,advection2d}, outcome={success,error}
	SimulationDuration *prometheus.HistogramVec // labels: model

	// Alert watcher.
	AlertsPublished prometheus.Counter
	AlertPolls      *prometheus.CounterVec // labels: outcome={success,error}
	WatcherRunning  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxmodel",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wxmodel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route pattern.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxmodel",
			Name:      "upstream_requests_total",
			Help:      "Requests to upstream weather services by outcome.",
		}, []string{"service", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wxmodel",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxmodel",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		SimulationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxmodel",
			Name:      "simulation_runs_total",
			Help:      "Simulation runs by model and outcome.",
		}, []string{"model", "outcome"}),
		SimulationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wxmodel",
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of one complete simulation run.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"model"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wxmodel",
			Name:      "alerts_published_total",
			Help:      "Alerts published to the Kafka topic.",
		}),
		AlertPolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxmodel",
			Name:      "alert_polls_total",
			Help:      "Active-alert polls by outcome.",
		}, []string{"outcome"}),
		WatcherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wxmodel",
			Name:      "alert_watcher_running",
			Help:      "1 when the alert watcher is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.SimulationRuns,
		m.SimulationDuration,
		m.AlertsPublished,
		m.AlertPolls,
		m.WatcherRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wxmodel", Name: "http_requests_total"}, []string{"route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "wxmodel", Name: "http_request_duration_seconds"}, []string{"route"}),
		UpstreamRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wxmodel", Name: "upstream_requests_total"}, []string{"service", "outcome"}),
		UpstreamDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "wxmodel", Name: "upstream_request_duration_seconds"}, []string{"service"}),
		CacheLookups:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wxmodel", Name: "cache_lookups_total"}, []string{"cache", "result"}),
		SimulationRuns:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wxmodel", Name: "simulation_runs_total"}, []string{"model", "outcome"}),
		SimulationDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "wxmodel", Name: "simulation_duration_seconds"}, []string{"model"}),
		AlertsPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wxmodel", Name: "alerts_published_total"}),
		AlertPolls:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wxmodel", Name: "alert_polls_total"}, []string{"outcome"}),
		WatcherRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wxmodel", Name: "alert_watcher_running"}),
	}
}
