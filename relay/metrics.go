package relay

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes recorded by Metrics.
const (
	outcomeEchoed     = "echoed"
	outcomeRedirected = "redirected"
	outcomeLanding    = "landing"
	outcomeError      = "error"
)

// Metrics records relay traffic on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	unexpected      prometheus.Counter
}

// NewMetrics creates the relay metrics on a fresh registry that also carries
// the Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seekr",
				Subsystem: "relay",
				Name:      "requests_total",
				Help:      "Total relayed requests by outcome",
			},
			[]string{"outcome"}, // echoed, redirected, landing, error
		),
		backendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "seekr",
				Subsystem: "relay",
				Name:      "backend_duration_seconds",
				Help:      "Duration of backend calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
			},
			[]string{"method"},
		),
		unexpected: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "seekr",
				Subsystem: "relay",
				Name:      "capture_unexpected_status_total",
				Help:      "Capture-path responses whose status was not a redirect",
			},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeRequest(outcome string) {
	m.requestsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeBackend(method string, elapsed time.Duration) {
	m.backendDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) observeUnexpected() {
	m.unexpected.Inc()
}
