// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the post operations on top of a record Backend:
// listing, slug lookup with neighbors, and the create/update rules for
// slugs and empty fields.
package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"airblog/internal/models"
	"airblog/internal/slug"
)

// ErrNotFound is returned when no post has the requested slug.
var ErrNotFound = errors.New("post not found")

// PostStore handles all post operations. Every call goes to the backend:
// there is no local state between requests.
type PostStore struct {
	backend Backend
}

// NewPostStore creates a PostStore over the given backend.
func NewPostStore(backend Backend) *PostStore {
	return &PostStore{backend: backend}
}

// List returns all posts, newest first.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	return s.backend.List(ctx)
}

// FindBySlug fetches the full list and returns the first post whose slug
// matches, with its neighbors in that order. Slugs are not unique; on a
// collision the newest post wins. The scan is linear in the number of posts.
func (s *PostStore) FindBySlug(ctx context.Context, slugParam string) (*models.Neighbors, error) {
	posts, err := s.backend.List(ctx)
	if err != nil {
		return nil, err
	}

	_, idx, ok := lo.FindIndexOf(posts, func(p models.Post) bool {
		return p.Slug() == slugParam
	})
	if !ok {
		return nil, ErrNotFound
	}

	n := &models.Neighbors{Post: &posts[idx]}
	if idx > 0 {
		n.Previous = &posts[idx-1]
	}
	if idx < len(posts)-1 {
		n.Next = &posts[idx+1]
	}
	return n, nil
}

// Create derives the slug from a truthy title (replacing any slug the caller
// sent), drops empty fields and stores the post.
func (s *PostStore) Create(ctx context.Context, fields models.Fields) (*models.Post, error) {
	return s.backend.Create(ctx, prepare(fields))
}

// Update applies the same rules as Create to a partial field map. The slug
// is only recomputed when the payload carries a truthy title, so an update
// that omits the title, or sends it empty, keeps the stored slug.
func (s *PostStore) Update(ctx context.Context, id string, fields models.Fields) (*models.Post, error) {
	return s.backend.Update(ctx, id, prepare(fields))
}

// Delete removes a post. Whether an unknown ID is an error is up to the
// backend.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, id)
}

// prepare returns a copy of fields with the slug derived from the title and
// every empty-string or null value removed.
func prepare(fields models.Fields) models.Fields {
	out := maps.Clone(fields)
	if out == nil {
		out = models.Fields{}
	}

	if title, ok := out[models.FieldTitle]; ok && truthy(title) {
		out[models.FieldSlug] = slug.Generate(stringify(title))
	}

	return models.Fields(lo.OmitBy(map[string]any(out), func(_ string, v any) bool {
		if v == nil {
			return true
		}
		s, isString := v.(string)
		return isString && s == ""
	}))
}

// truthy reports whether a decoded JSON value counts as set: null, "",
// false and 0 do not.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	}
	return true
}

// stringify renders a decoded JSON value the way a JavaScript String()
// conversion does, so slugs derived from non-string titles stay stable:
// numbers in plain decimal below 1e21, arrays joined with "," and objects
// as "[object Object]".
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	case map[string]any, models.Fields:
		return "[object Object]"
	}
	return fmt.Sprint(v)
}

// formatNumber follows Number.prototype.toString for base 10.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Exponent form: Go pads the exponent to two digits, JavaScript does not.
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
