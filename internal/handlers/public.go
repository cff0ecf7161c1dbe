// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"airblog/internal/render"
	"airblog/internal/store"
)

// Public groups handlers for the server-rendered public site. Every request
// fetches the full post list from the store; nothing is cached.
type Public struct {
	renderer *render.Renderer
	posts    *store.PostStore
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, posts *store.PostStore) *Public {
	return &Public{renderer: renderer, posts: posts}
}

// Index renders the list of all posts, newest first.
func (p *Public) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := p.posts.List(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Error loading the blog", http.StatusInternalServerError)
		return
	}

	err = p.renderer.Page(w, http.StatusOK, "index", &render.PageData{
		Title:       render.SiteTitle,
		Description: render.SiteDescription,
		Posts:       posts,
	})
	if err != nil {
		slog.Error("render index failed", "error", err)
		http.Error(w, "Error loading the blog", http.StatusInternalServerError)
	}
}

// Post renders a single post found by slug, with links to the newer and
// older posts around it.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	found, err := p.posts.FindBySlug(r.Context(), slugParam)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("find post by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Error loading the post", http.StatusInternalServerError)
		return
	}

	err = p.renderer.Page(w, http.StatusOK, "post", &render.PageData{
		Title:       found.Post.PageTitle(),
		Description: found.Post.PageDescription(),
		Post:        found.Post,
		Previous:    found.Previous,
		Next:        found.Next,
	})
	if err != nil {
		slog.Error("render post failed", "error", err, "slug", slugParam)
		http.Error(w, "Error loading the post", http.StatusInternalServerError)
	}
}
