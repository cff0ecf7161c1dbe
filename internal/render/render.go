// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog
// pages: the post list and the single post view.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/golang-module/carbon/v2"

	"airblog/internal/markdown"
	"airblog/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Site-wide metadata for the post list page.
const (
	SiteTitle       = "Blog de Gestión Relativa"
	SiteDescription = "Artículos y noticias."
)

// PageData holds all data passed to the public templates.
type PageData struct {
	Title       string // <title> and heading
	Description string // <meta name="description">

	Posts []models.Post // index page

	Post     *models.Post // post page
	Previous *models.Post // newer neighbor, nil on the newest post
	Next     *models.Post // older neighbor, nil on the oldest post
}

// Renderer holds the parsed page templates, each paired with the base layout.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page template from the embedded filesystem.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		"markdown":    markdown.Trusted,
		"displayDate": DisplayDate,
	}

	pages, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range pages {
		name := e.Name()
		if e.IsDir() || name == "base.html" || filepath.Ext(name) != ".html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name[:len(name)-len(".html")]] = tmpl
	}

	return r, nil
}

// Page renders a full page with the given status. The template is executed
// into a buffer first so a failing template never leaves a half-written
// response; the caller gets the error and decides what to send instead.
func (rn *Renderer) Page(w http.ResponseWriter, status int, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// DisplayDate formats a stored date ("2026-02-25" or an ISO timestamp) for
// readers, e.g. "Feb 25, 2026". Unparseable values are shown as stored.
func DisplayDate(value string) string {
	if value == "" {
		return ""
	}
	c := carbon.Parse(value)
	if c.Error != nil || c.IsInvalid() {
		return value
	}
	return c.ToFormattedDateString()
}
