// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package airtable binds one Airtable table to the record operations the
// blog needs: list (all pages, sorted), create, partial update and delete.
// Requests go through github.com/mehanizm/airtable; failures come back as
// *Error carrying the upstream message.
package airtable

import (
	"context"
	"fmt"
	"net/http"
	"time"

	at "github.com/mehanizm/airtable"
)

// DefaultBaseURL is the Airtable REST API root.
const DefaultBaseURL = "https://api.airtable.com/v0"

// DefaultTimeout bounds a single upstream request. It matches the request
// timeout of the official JavaScript client. Requests are never retried.
const DefaultTimeout = 5 * time.Minute

// Config holds the credentials and table coordinates for one table.
type Config struct {
	APIKey  string
	BaseID  string
	Table   string
	BaseURL string
}

// Record is one row as returned by the API.
type Record struct {
	ID     string
	Fields map[string]any
}

// Sort orders a list request by one field. Direction is "asc" or "desc".
type Sort struct {
	Field     string
	Direction string
}

// Client talks to a single Airtable table.
type Client struct {
	table *at.Table
}

// New creates a client for the configured table.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	client := at.NewClient(cfg.APIKey)
	if err := client.SetBaseURL(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("airtable base url: %w", err)
	}
	client.SetCustomClient(&http.Client{Timeout: DefaultTimeout})

	return &Client{table: client.GetTable(cfg.BaseID, cfg.Table)}, nil
}

// List fetches every record of the table, following the offset cursor
// until the last page, ordered by the given sorts. A done context stops
// the walk between pages.
func (c *Client) List(ctx context.Context, sorts ...Sort) ([]Record, error) {
	var records []Record
	offset := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := c.table.GetRecords().WithSort(sortQueries(sorts)...)
		if offset != "" {
			req = req.WithOffset(offset)
		}
		page, err := req.Do()
		if err != nil {
			return nil, translate(err)
		}
		for _, r := range page.Records {
			records = append(records, fromRecord(r))
		}

		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

// Create inserts one record and returns it as stored.
func (c *Client) Create(ctx context.Context, fields map[string]any) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.table.AddRecords(&at.Records{
		Records: []*at.Record{{Fields: fields}},
	})
	if err != nil {
		return nil, translate(err)
	}
	return first(resp)
}

// Update changes only the given fields of a record (PATCH semantics) and
// returns the full record as stored.
func (c *Client) Update(ctx context.Context, id string, fields map[string]any) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.table.UpdateRecordsPartial(&at.Records{
		Records: []*at.Record{{ID: id, Fields: fields}},
	})
	if err != nil {
		return nil, translate(err)
	}
	return first(resp)
}

// Delete removes a record by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := c.table.DeleteRecords([]string{id}); err != nil {
		return translate(err)
	}
	return nil
}

// sortQueries converts sorts to the query form the library expects.
func sortQueries(sorts []Sort) []struct {
	FieldName string
	Direction string
} {
	out := make([]struct {
		FieldName string
		Direction string
	}, len(sorts))
	for i, s := range sorts {
		out[i].FieldName = s.Field
		out[i].Direction = s.Direction
	}
	return out
}

func fromRecord(r *at.Record) Record {
	return Record{ID: r.ID, Fields: r.Fields}
}

func first(resp *at.Records) (*Record, error) {
	if resp == nil || len(resp.Records) == 0 || resp.Records[0] == nil {
		return nil, fmt.Errorf("airtable: no records returned")
	}
	rec := fromRecord(resp.Records[0])
	return &rec, nil
}
