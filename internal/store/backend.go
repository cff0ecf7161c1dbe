// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"airblog/internal/airtable"
	"airblog/internal/models"
)

// Backend is the record store holding the posts. It is the only source of
// truth; nothing is persisted or cached locally.
type Backend interface {
	// List returns every post sorted by date, newest first.
	List(ctx context.Context) ([]models.Post, error)
	// Create stores a new post and returns it with its assigned ID.
	Create(ctx context.Context, fields models.Fields) (*models.Post, error)
	// Update overwrites only the given fields and returns the full post.
	Update(ctx context.Context, id string, fields models.Fields) (*models.Post, error)
	// Delete removes a post by ID.
	Delete(ctx context.Context, id string) error
}

// AirtableBackend stores posts in an Airtable table.
type AirtableBackend struct {
	client *airtable.Client
}

// NewAirtableBackend creates a Backend on top of an Airtable table client.
func NewAirtableBackend(client *airtable.Client) *AirtableBackend {
	return &AirtableBackend{client: client}
}

// List fetches all records sorted server-side by date descending. Ties keep
// whatever order Airtable returns.
func (b *AirtableBackend) List(ctx context.Context) ([]models.Post, error) {
	records, err := b.client.List(ctx, airtable.Sort{Field: models.FieldDate, Direction: "desc"})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]models.Post, 0, len(records))
	for _, rec := range records {
		posts = append(posts, toPost(&rec))
	}
	return posts, nil
}

// Create inserts a post record.
func (b *AirtableBackend) Create(ctx context.Context, fields models.Fields) (*models.Post, error) {
	rec, err := b.client.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	p := toPost(rec)
	return &p, nil
}

// Update patches a post record.
func (b *AirtableBackend) Update(ctx context.Context, id string, fields models.Fields) (*models.Post, error) {
	rec, err := b.client.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	p := toPost(rec)
	return &p, nil
}

// Delete removes a post record.
func (b *AirtableBackend) Delete(ctx context.Context, id string) error {
	if err := b.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func toPost(rec *airtable.Record) models.Post {
	fields := models.Fields(rec.Fields)
	if fields == nil {
		fields = models.Fields{}
	}
	return models.Post{ID: rec.ID, Fields: fields}
}
