// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// content API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"b3cms/internal/handlers"
	"b3cms/internal/middleware"
)

// Deps holds everything the router wires together.
type Deps struct {
	Content  *handlers.Content
	Category *handlers.Category
	Health   http.Handler

	// Registry receives the HTTP metrics and backs /metrics.
	Registry *prometheus.Registry

	// CounterLimiter throttles the view and share counting endpoints.
	// Nil disables throttling.
	CounterLimiter *middleware.RateLimiter
}

// New creates the configured chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	metrics := middleware.NewMetrics(d.Registry)

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Method(http.MethodGet, "/health", d.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))

	counted := func(h http.HandlerFunc) http.Handler {
		if d.CounterLimiter == nil {
			return h
		}
		return d.CounterLimiter.Middleware(h)
	}

	r.Route("/content", func(r chi.Router) {
		c := d.Content
		r.Get("/", c.List)
		r.Post("/", c.Create)

		// Static segments take precedence over {id} in chi.
		r.Get("/published", c.Published)
		r.Get("/tags", c.ByTags)
		r.Get("/stats", c.Stats)
		r.Method(http.MethodGet, "/slug/{slug}", counted(c.BySlug))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", c.Get)
			r.Put("/", c.Update)
			r.Delete("/", c.Delete)
			r.Get("/related", c.Related)
			r.Get("/revisions", c.Revisions)
			r.Patch("/publish", c.Publish)
			r.Patch("/unpublish", c.Unpublish)
			r.Patch("/archive", c.Archive)
			r.Patch("/schedule", c.Schedule)
			r.Method(http.MethodPatch, "/share", counted(c.Share))
		})
	})

	r.Route("/categories", func(r chi.Router) {
		c := d.Category
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/tree", c.Tree)
		r.Get("/{id}", c.Get)
		r.Put("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	})

	return r
}
