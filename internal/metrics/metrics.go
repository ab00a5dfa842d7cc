package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusCollector implements Collector on a private registry so the
// exposition endpoint carries only this service's metrics.
type PrometheusCollector struct {
	callsTotal        *prometheus.CounterVec
	callDuration      *prometheus.HistogramVec
	validationRetries *prometheus.CounterVec
	registry          *prometheus.Registry
}

// NewCollector creates a Prometheus-backed collector.
func NewCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()

	callsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_advisor_backend_calls_total",
			Help: "Total backend calls by operation, backend and status",
		},
		[]string{"operation", "backend", "status"},
	)

	callDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_advisor_backend_call_duration_seconds",
			Help:    "Duration of backend calls by operation and backend",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"operation", "backend"},
	)

	validationRetries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_advisor_validation_retries_total",
			Help: "Structured-output validation misses by operation",
		},
		[]string{"operation"},
	)

	registry.MustRegister(callsTotal)
	registry.MustRegister(callDuration)
	registry.MustRegister(validationRetries)

	return &PrometheusCollector{
		callsTotal:        callsTotal,
		callDuration:      callDuration,
		validationRetries: validationRetries,
		registry:          registry,
	}
}

// RecordCall records one backend call with its outcome and duration.
func (c *PrometheusCollector) RecordCall(operation, backend, status string, duration time.Duration) {
	c.callsTotal.WithLabelValues(operation, backend, status).Inc()
	c.callDuration.WithLabelValues(operation, backend).Observe(duration.Seconds())
}

// RecordValidationRetry records one structured-output validation miss.
func (c *PrometheusCollector) RecordValidationRetry(operation string) {
	c.validationRetries.WithLabelValues(operation).Inc()
}

// Handler returns the exposition endpoint for this collector's registry.
func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
