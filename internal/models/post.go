// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the record types exchanged between the store,
// the handlers and the templates.
package models

import (
	"encoding/json"
	"fmt"
)

// Well-known post field names as stored in the Airtable table.
// Any other column is carried through untouched.
const (
	FieldTitle           = "title"
	FieldSlug            = "slug"
	FieldDate            = "date"
	FieldExcerpt         = "excerpt"
	FieldBody            = "body"
	FieldMetaTitle       = "metaTitle"
	FieldMetaDescription = "metaDescription"
)

// Fields is the open-ended column map of a record. Values keep whatever
// type the JSON decoder produced (string, float64, bool, []any, ...).
type Fields map[string]any

// Post is one row of the posts table: an opaque store-assigned ID plus its
// fields. The system never validates the fields; it only reads the few it
// needs for sorting, lookup and page metadata.
type Post struct {
	ID     string
	Fields Fields
}

// String returns the named field as a string. Missing and null values give
// "", other non-string values are formatted with fmt.
func (p Post) String(key string) string {
	v, ok := p.Fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (p Post) Title() string           { return p.String(FieldTitle) }
func (p Post) Slug() string            { return p.String(FieldSlug) }
func (p Post) Date() string            { return p.String(FieldDate) }
func (p Post) Excerpt() string         { return p.String(FieldExcerpt) }
func (p Post) Body() string            { return p.String(FieldBody) }
func (p Post) MetaTitle() string       { return p.String(FieldMetaTitle) }
func (p Post) MetaDescription() string { return p.String(FieldMetaDescription) }

// PageTitle is the <title> for the post page: metaTitle, else title.
func (p Post) PageTitle() string {
	if t := p.MetaTitle(); t != "" {
		return t
	}
	return p.Title()
}

// PageDescription is the meta description for the post page:
// metaDescription, else excerpt.
func (p Post) PageDescription() string {
	if d := p.MetaDescription(); d != "" {
		return d
	}
	return p.Excerpt()
}

// MarshalJSON flattens the post into a single object: {"id": ..., <fields>}.
// A stored column literally named "id" shadows the record ID.
func (p Post) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fields)+1)
	out["id"] = p.ID
	for k, v := range p.Fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// Neighbors is a post together with the posts adjacent to it in the
// current date-descending order. Previous is the newer post, Next the
// older one; either is nil at the ends of the list.
type Neighbors struct {
	Post     *Post
	Previous *Post
	Next     *Post
}
