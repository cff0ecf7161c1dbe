// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against the in-memory backend, or against fakeBackend when
// a test needs store failures or call counts.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"airblog/internal/models"
	"airblog/internal/render"
	"airblog/internal/store"
)

const testSecret = "s3cret"

// fakeBackend is a store.Backend that fails every call with err and counts
// how often it was reached.
type fakeBackend struct {
	err   error
	calls int
}

func (f *fakeBackend) List(context.Context) ([]models.Post, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeBackend) Create(context.Context, models.Fields) (*models.Post, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeBackend) Update(context.Context, string, models.Fields) (*models.Post, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeBackend) Delete(context.Context, string) error {
	f.calls++
	return f.err
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Posts  *store.PostStore
	API    *API
	Public *Public
}

// newTestEnv wires the handlers over the given backend.
func newTestEnv(t *testing.T, backend store.Backend) *testEnv {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	posts := store.NewPostStore(backend)
	return &testEnv{
		Posts:  posts,
		API:    NewAPI(posts, testSecret),
		Public: NewPublic(renderer, posts),
	}
}

// seed creates posts with the given titles, newest first.
func (e *testEnv) seed(t *testing.T, titles ...string) []*models.Post {
	t.Helper()
	var created []*models.Post
	for i, title := range titles {
		p, err := e.Posts.Create(context.Background(), models.Fields{
			"title": title,
			"date":  fmt.Sprintf("2026-01-%02d", 28-i),
		})
		if err != nil {
			t.Fatalf("seed %q: %v", title, err)
		}
		created = append(created, p)
	}
	return created
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonBody encodes v for use as a request body.
func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return strings.NewReader(string(b))
}

// decodeMap decodes a JSON object response.
func decodeMap(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(body).Decode(&m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return m
}
