package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes recorded by Metrics.ObserveRun
const (
	OutcomeScheduled  = "scheduled"
	OutcomeInvalid    = "invalid"
	OutcomeInfeasible = "infeasible"
	OutcomeError      = "error"
)

// Metrics holds the Prometheus collectors of the HTTP API on a private registry
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	runsTotal       *prometheus.CounterVec
	warningsTotal   prometheus.Counter
	runDuration     prometheus.Histogram
}

// NewMetrics registers the API collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shift_rota_runs_total",
		Help: "Scheduling runs by outcome",
	}, []string{"outcome"})

	warningsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shift_rota_warnings_total",
		Help: "Warnings raised by scheduling runs",
	})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shift_rota_run_duration_seconds",
		Help:    "Time spent generating a schedule",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	registry.MustRegister(requestDuration, requestTotal, runsTotal, warningsTotal, runDuration)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runsTotal:       runsTotal,
		warningsTotal:   warningsTotal,
		runDuration:     runDuration,
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// ObserveRun records one scheduling attempt
func (m *Metrics) ObserveRun(outcome string, warnings int, duration time.Duration) {
	m.runsTotal.WithLabelValues(outcome).Inc()
	if warnings > 0 {
		m.warningsTotal.Add(float64(warnings))
	}
	m.runDuration.Observe(duration.Seconds())
}
