package metric

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sealslot"

// Registry holds all application metrics on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     prometheus.Counter

	Registrations prometheus.Counter
	Writes        *prometheus.CounterVec
	Verifications *prometheus.CounterVec
}

// NewRegistry creates a registry with Go runtime and process collectors
// plus the SealSlot metrics.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"route", "method"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-IP rate limiter.",
		}),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Client identities issued.",
		}),
		Writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_total",
			Help:      "Record writes by outcome (accepted, rejected).",
		}, []string{"outcome"}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Tag verifications on read and recover by verdict.",
		}, []string{"op", "verdict"}),
	}

	reg.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.RateLimited,
		r.Registrations,
		r.Writes,
		r.Verifications,
	)

	return r
}

// MustRegister registers additional collectors, such as a StateCollector.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordRequest counts one HTTP request and observes its latency.
func (r *Registry) RecordRequest(route, method string, status int, seconds float64) {
	r.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// IncRateLimited counts one rate-limited request.
func (r *Registry) IncRateLimited() {
	r.RateLimited.Inc()
}

// ClientRegistered counts one registration.
func (r *Registry) ClientRegistered(int) {
	r.Registrations.Inc()
}

// WriteAttempted counts one write by outcome.
func (r *Registry) WriteAttempted(accepted bool, _ int) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	r.Writes.WithLabelValues(outcome).Inc()
}

// Verified counts one verification verdict for op.
func (r *Registry) Verified(op string, valid bool) {
	verdict := "invalid"
	if valid {
		verdict = "valid"
	}
	r.Verifications.WithLabelValues(op, verdict).Inc()
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns a process-wide registry, created on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler serves the global registry.
func Handler() http.Handler {
	return Global().Handler()
}
