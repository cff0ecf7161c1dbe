package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"airblog/internal/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func post(id, title, slug, date string) *models.Post {
	return &models.Post{ID: id, Fields: models.Fields{
		"title": title, "slug": slug, "date": date,
	}}
}

// --------------------------------------------------------------------------
// New
// --------------------------------------------------------------------------

func TestNew_ParsesPages(t *testing.T) {
	r := newRenderer(t)
	for _, name := range []string{"index", "post"} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
	if _, ok := r.templates["base"]; ok {
		t.Error("base layout should not be a standalone page")
	}
}

// --------------------------------------------------------------------------
// Index page
// --------------------------------------------------------------------------

func TestPage_Index(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	first := post("rec1", "Newest Post", "newest-post", "2026-02-25")
	first.Fields["excerpt"] = "A short excerpt"
	second := post("rec2", "Older <Post>", "older-post", "2026-01-10")

	err := r.Page(rr, http.StatusOK, "index", &PageData{
		Title:       SiteTitle,
		Description: SiteDescription,
		Posts:       []models.Post{*first, *second},
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}

	body := rr.Body.String()
	for _, want := range []string{
		"<title>" + SiteTitle + "</title>",
		`<meta name="description" content="` + SiteDescription + `">`,
		`<a href="/post/newest-post">Newest Post</a>`,
		"A short excerpt",
		"Feb 25, 2026",
		"Older &lt;Post&gt;",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body should contain %q", want)
		}
	}
	if strings.Index(body, "newest-post") > strings.Index(body, "older-post") {
		t.Error("posts should render in the given order")
	}
}

func TestPage_IndexEmpty(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	if err := r.Page(rr, http.StatusOK, "index", &PageData{Title: SiteTitle}); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(rr.Body.String(), `class="empty"`) {
		t.Error("empty list should render the empty-state message")
	}
}

// --------------------------------------------------------------------------
// Post page
// --------------------------------------------------------------------------

func TestPage_Post(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	current := post("rec2", "Current", "current", "2026-02-01")
	current.Fields["body"] = "## Section\n\nSome **bold** text."

	err := r.Page(rr, http.StatusOK, "post", &PageData{
		Title:       current.PageTitle(),
		Description: current.PageDescription(),
		Post:        current,
		Previous:    post("rec1", "Newer", "newer", "2026-03-01"),
		Next:        post("rec3", "Older", "older", "2026-01-01"),
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	body := rr.Body.String()
	for _, want := range []string{
		"<h1>Current</h1>",
		`<h2 id="section">Section</h2>`,
		"<strong>bold</strong>",
		`<a href="/post/newer">Newer</a>`,
		`<a href="/post/older">Older</a>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body should contain %q", want)
		}
	}
}

func TestPage_PostWithoutNeighbors(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	err := r.Page(rr, http.StatusOK, "post", &PageData{
		Title: "Only",
		Post:  post("rec1", "Only", "only", "2026-01-01"),
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	body := rr.Body.String()
	if strings.Contains(body, `class="previous"`) || strings.Contains(body, `class="next"`) {
		t.Error("no neighbor links expected for a single post")
	}
}

func TestPage_UnknownTemplate(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	if err := r.Page(rr, http.StatusOK, "missing", &PageData{}); err == nil {
		t.Fatal("expected error for unknown template")
	}
	if rr.Body.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}

// --------------------------------------------------------------------------
// DisplayDate
// --------------------------------------------------------------------------

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-02-25", "Feb 25, 2026"},
		{"", ""},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := DisplayDate(tt.in); got != tt.want {
			t.Errorf("DisplayDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
