package store

import (
	"context"
	"maps"

	"airblog/internal/models"
)

// countingBackend is a Backend test double that records calls and echoes
// writes back. When err is set every call fails with it.
type countingBackend struct {
	err        error
	posts      []models.Post
	lastFields models.Fields

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (b *countingBackend) List(ctx context.Context) ([]models.Post, error) {
	b.listCalls++
	if b.err != nil {
		return nil, b.err
	}
	return b.posts, nil
}

func (b *countingBackend) Create(ctx context.Context, fields models.Fields) (*models.Post, error) {
	b.createCalls++
	b.lastFields = maps.Clone(fields)
	if b.err != nil {
		return nil, b.err
	}
	return &models.Post{ID: "recCreated", Fields: fields}, nil
}

func (b *countingBackend) Update(ctx context.Context, id string, fields models.Fields) (*models.Post, error) {
	b.updateCalls++
	b.lastFields = maps.Clone(fields)
	if b.err != nil {
		return nil, b.err
	}
	return &models.Post{ID: id, Fields: fields}, nil
}

func (b *countingBackend) Delete(ctx context.Context, id string) error {
	b.deleteCalls++
	return b.err
}
