// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// blog. It organizes routes into the password-gated JSON API, the public
// pages and the static file trees.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"airblog/internal/handlers"
	"airblog/internal/middleware"
)

// Options holds the values the router needs besides the handler groups.
type Options struct {
	// Secret is the shared admin password checked on every /api/posts call.
	Secret string
	// StaticDir is served for any path no route matches.
	StaticDir string
	// AdminDir holds the admin single-page app, served under /admin/.
	AdminDir string
	// RequestTimeout, when set, is the deadline put on every request
	// context. Store calls stop once it passes.
	RequestTimeout time.Duration
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Login checks the password from the body, not the header.
		r.Post("/login", api.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSecret(opts.Secret))

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", api.ListPosts)
				r.Post("/", api.CreatePost)
				r.Put("/{id}", api.UpdatePost)
				r.Delete("/{id}", api.DeletePost)
			})
		})
	})

	// Public pages.
	r.Get("/", public.Index)
	r.Get("/post/{slug}", public.Post)

	if opts.AdminDir != "" {
		r.Handle("/admin/*", http.StripPrefix("/admin", http.FileServer(http.Dir(opts.AdminDir))))
		r.Get("/admin", http.RedirectHandler("/admin/", http.StatusMovedPermanently).ServeHTTP)
	}
	if opts.StaticDir != "" {
		r.NotFound(http.FileServer(http.Dir(opts.StaticDir)).ServeHTTP)
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
