package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains Prometheus metrics for the parser service.
// All methods are safe on a nil receiver.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inflight        prometheus.Gauge
	sourceBytes     *prometheus.HistogramVec
	diagnostics     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on reg. A nil reg uses a fresh
// registry, which keeps tests and multiple servers apart.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glox_grpc_requests_total",
				Help: "Total number of gRPC requests handled",
			},
			[]string{"method", "code"},
		),

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "glox_grpc_request_duration_seconds",
				Help:    "Duration of gRPC requests",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"method"},
		),

		inflight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "glox_grpc_requests_inflight",
				Help: "Number of gRPC requests currently being handled",
			},
		),

		sourceBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "glox_source_bytes",
				Help:    "Size of submitted source texts",
				Buckets: prometheus.ExponentialBuckets(16, 4, 8),
			},
			[]string{"operation"},
		),

		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glox_diagnostics_total",
				Help: "Total number of syntax diagnostics reported",
			},
			[]string{"operation"},
		),

		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(method, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, code).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) trackInflight(delta float64) {
	if m == nil {
		return
	}
	m.inflight.Add(delta)
}

func (m *Metrics) observeSource(operation string, bytes, diagnostics int) {
	if m == nil {
		return
	}
	m.sourceBytes.WithLabelValues(operation).Observe(float64(bytes))
	if diagnostics > 0 {
		m.diagnostics.WithLabelValues(operation).Add(float64(diagnostics))
	}
}
