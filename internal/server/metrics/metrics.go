// Package metrics holds the Prometheus collectors for the backend-api server.
// Each Metrics owns its own registry so tests and multiple servers in one
// process never collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "backend_api"

// Metrics contains the Prometheus metrics for the HTTP server.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	info     *prometheus.GaugeVec
}

// New creates the collectors on a fresh registry and records the build version.
func New(version string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	m := &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total number of HTTP requests served."},
			[]string{"method", "code"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "Latency of HTTP requests in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"method"},
		),
		info: factory.NewGaugeVec(
			prometheus.GaugeOpts{Namespace: namespace, Name: "info", Help: "Build information."},
			[]string{"version"},
		),
	}
	m.info.WithLabelValues(version).Set(1)

	return m
}

// Observe records one completed request.
func (m *Metrics) Observe(method string, status int, duration time.Duration) {
	method = methodLabel(method)
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method).Observe(duration.Seconds())
}

// methodLabel maps the request method onto a fixed label set. Methods are
// client-controlled, so anything non-standard collapses into "other".
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodOptions, http.MethodConnect, http.MethodTrace:
		return method
	default:
		return "other"
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
