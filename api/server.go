/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. Metrics:    Prometheus request counting by route pattern
  5. CORS:       Cross-origin requests for a web client

SECURITY NOTE:
  No authentication middleware. This service is built for a single user's
  local data; put it behind a reverse proxy before exposing it.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions tunes the router from server configuration.
type RouterOptions struct {
	// AllowedOrigins for CORS. Empty disables cross-origin access.
	AllowedOrigins []string

	// EnableMetrics mounts GET /metrics.
	EnableMetrics bool
}

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.Metrics.Middleware)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			r.Patch("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.DeleteTask)
		})

		r.Route("/days/{date}", func(r chi.Router) {
			r.Get("/", h.GetDay)
			r.Put("/target", h.SetDayTarget)
			r.Post("/tasks/{taskID}/completions", h.CompleteTask)
			r.Get("/progress", h.GetProgress)
			r.Get("/streak", h.GetStreak)
		})
	})

	if opts.EnableMetrics {
		r.Method("GET", "/metrics", promhttp.HandlerFor(
			h.Metrics.Registry(),
			promhttp.HandlerOpts{},
		))
	}

	return r
}
