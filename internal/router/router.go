// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains of the
// newsdesk API. Reads are public; writes require an authenticated caller.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
)

// Deps holds everything the router wires into routes.
type Deps struct {
	Articles   *handlers.Articles
	Categories *handlers.Categories
	Health     http.HandlerFunc
	JWTSecret  string
	// ViewLimiter throttles view counting per client; nil disables it.
	ViewLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. Logger wraps Recoverer so
	// a panicking request still gets its access line with the 500.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", d.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.JWTSecret))

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", d.Articles.List)
			r.Get("/{id}", d.Articles.Get)
			r.With(limitViews(d.ViewLimiter)).Post("/{id}/{counter}", d.Articles.Increment)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCaller)
				r.Post("/", d.Articles.Create)
				r.Put("/{id}", d.Articles.Update)
				r.Patch("/{id}", d.Articles.Update)
				r.Delete("/{id}", d.Articles.Delete)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.Categories.List)
			r.Get("/{id}", d.Categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCaller)
				r.Post("/", d.Categories.Create)
				r.Post("/reorder", d.Categories.Reorder)
				r.Put("/{id}", d.Categories.Update)
				r.Delete("/{id}", d.Categories.Delete)
			})
		})
	})

	return r
}

// limitViews applies rl to view increments only. Likes and shares are not
// throttled.
func limitViews(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil {
			return next
		}
		limited := rl.Middleware(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if models.Counter(chi.URLParam(r, "counter")) == models.CounterViews {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
