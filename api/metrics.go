/*
metrics.go - Prometheus instrumentation

PURPOSE:
  Counts the things an operator of this service would graph: HTTP traffic
  by route and status, completions recorded, days scored, and scoring
  failures caused by corrupt task data (the one alert-worthy signal - it
  means the stored attributes need attention).

SEE ALSO:
  - server.go: Mounts the middleware and the /metrics endpoint
  - handlers.go: Increments the domain counters
*/
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	completions  prometheus.Counter
	daysScored   prometheus.Counter
	scoreFailures prometheus.Counter
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tally_http_requests_total",
			Help: "HTTP requests by method, route pattern, and status code.",
		}, []string{"method", "route", "status"}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_completions_recorded_total",
			Help: "Task completions recorded.",
		}),
		daysScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_days_scored_total",
			Help: "Day progress evaluations served.",
		}),
		scoreFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_score_failures_total",
			Help: "Evaluations rejected due to corrupt task attributes.",
		}),
	}

	registry.MustRegister(m.requests, m.completions, m.daysScored, m.scoreFailures)
	return m
}

// Registry exposes the underlying registry for the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware counts every request once the handler chain finishes, using
// the chi route pattern so path parameters don't explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
	})
}
