// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the blog. Handlers are
// grouped by concern (JSON API, public pages) and receive their
// dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"airblog/internal/airtable"
	"airblog/internal/middleware"
	"airblog/internal/models"
	"airblog/internal/store"
)

// Response messages of the JSON API.
const (
	msgLoginOK      = "Login successful"
	msgLoginFailed  = "Incorrect password"
	msgListFailed   = "Error fetching posts"
	msgCreateFailed = "Store error while creating the post."
	msgUpdateFailed = "Store error while updating the post."
	msgDeleteFailed = "Error deleting the post"
	msgDeleted      = "Post deleted"
	msgInvalidBody  = "Invalid request body"
)

// maxRequestBodyBytes caps API request bodies.
const maxRequestBodyBytes = 1 << 20

// API groups the JSON endpoints used by the admin single-page app.
type API struct {
	posts  *store.PostStore
	secret string
}

// NewAPI creates the API handler group. secret is the shared admin
// password checked by Login; the other endpoints sit behind
// middleware.RequireSecret.
func NewAPI(posts *store.PostStore, secret string) *API {
	return &API{posts: posts, secret: secret}
}

// Login checks a password sent in the body (JSON or form-encoded) so the
// admin app can validate it before storing it for later requests. Nothing
// is issued on success.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	fields, _ := decodeFields(w, r)
	password, _ := fields["password"].(string)
	if !middleware.SecretMatches(password, a.secret) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: msgLoginFailed})
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: msgLoginOK})
}

// ListPosts returns every post, newest first.
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.List(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: msgListFailed, Details: upstreamMessage(err)})
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreatePost stores a new post from the request's field map.
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidBody, Details: err.Error()})
		return
	}

	post, err := a.posts.Create(r.Context(), fields)
	if err != nil {
		slog.Error("create post failed", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgCreateFailed, Details: upstreamMessage(err)})
		return
	}

	slog.Info("post created", "id", post.ID, "slug", post.Slug())
	writeJSON(w, http.StatusCreated, post)
}

// UpdatePost applies a partial field map to the post named in the URL.
func (a *API) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fields, err := decodeFields(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidBody, Details: err.Error()})
		return
	}

	post, err := a.posts.Update(r.Context(), id, fields)
	if err != nil {
		slog.Error("update post failed", "error", err, "id", id)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgUpdateFailed, Details: upstreamMessage(err)})
		return
	}

	slog.Info("post updated", "id", post.ID, "slug", post.Slug())
	writeJSON(w, http.StatusOK, post)
}

// DeletePost removes the post named in the URL.
func (a *API) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.posts.Delete(r.Context(), id); err != nil {
		slog.Error("delete post failed", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: msgDeleteFailed, Details: upstreamMessage(err)})
		return
	}

	slog.Info("post deleted", "id", id)
	writeJSON(w, http.StatusOK, messageBody{Message: msgDeleted})
}

// --- Helpers ---

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

// decodeFields reads the request body as a field map. Form-encoded bodies
// go through formFields; anything else must be a JSON object. An empty body
// is an empty map.
func decodeFields(w http.ResponseWriter, r *http.Request) (models.Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return formFields(r.PostForm), nil
	}

	var fields models.Fields
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Fields{}, nil
		}
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if fields == nil {
		// A literal null body.
		fields = models.Fields{}
	}
	return fields, nil
}

// formFields maps form values to fields. A key sent once is a string. A
// repeated key, or one written with a trailing "[]" (tags[]=a&tags[]=b), is
// a list under the bare name. Bracketed nesting such as a[b]=c is not
// expanded and stays a literal key.
func formFields(form url.Values) models.Fields {
	values := make(map[string][]string, len(form))
	lists := make(map[string]bool)
	for _, key := range slices.Sorted(maps.Keys(form)) {
		name, isList := strings.CutSuffix(key, "[]")
		if name == "" || len(form[key]) == 0 {
			continue
		}
		values[name] = append(values[name], form[key]...)
		lists[name] = lists[name] || isList || len(values[name]) > 1
	}

	fields := make(models.Fields, len(values))
	for name, vs := range values {
		if !lists[name] {
			fields[name] = vs[0]
			continue
		}
		list := make([]any, len(vs))
		for i, v := range vs {
			list[i] = v
		}
		fields[name] = list
	}
	return fields
}

// upstreamMessage returns the store's own error text, which the API passes
// through to the caller as is.
func upstreamMessage(err error) string {
	var apiErr *airtable.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
