// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"airblog/internal/models"
)

// ErrRecordNotFound is returned by MemoryBackend for an unknown record ID.
var ErrRecordNotFound = errors.New("record not found")

// MemoryBackend keeps posts in process memory. It is meant for local
// development without Airtable credentials and for tests; contents are
// lost on restart.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]models.Fields
	order   []string // insertion order, used as the sort tie-break
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		records: make(map[string]models.Fields),
	}
}

// List returns copies of all posts sorted by date descending. Dates are
// compared as strings, which orders ISO 8601 values chronologically.
// Equal dates keep insertion order.
func (m *MemoryBackend) List(ctx context.Context) ([]models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := make([]models.Post, 0, len(m.order))
	for _, id := range m.order {
		posts = append(posts, models.Post{ID: id, Fields: maps.Clone(m.records[id])})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date() > posts[j].Date()
	})
	return posts, nil
}

// Create stores a copy of fields under a new record ID.
func (m *MemoryBackend) Create(ctx context.Context, fields models.Fields) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := newRecordID()
	stored := maps.Clone(fields)
	if stored == nil {
		stored = models.Fields{}
	}
	m.records[id] = stored
	m.order = append(m.order, id)

	return &models.Post{ID: id, Fields: maps.Clone(stored)}, nil
}

// Update merges fields into an existing record.
func (m *MemoryBackend) Update(ctx context.Context, id string, fields models.Fields) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("update %s: %w", id, ErrRecordNotFound)
	}
	maps.Copy(stored, fields)

	return &models.Post{ID: id, Fields: maps.Clone(stored)}, nil
}

// Delete removes a record.
func (m *MemoryBackend) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, ErrRecordNotFound)
	}
	delete(m.records, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// newRecordID returns an ID shaped like an Airtable record ID ("rec" + 14
// alphanumerics) so the admin UI treats both backends alike.
func newRecordID() string {
	return "rec" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}
