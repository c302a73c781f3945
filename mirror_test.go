package folio

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestPostMarkdown(t *testing.T) {
	cfg := SiteConfig{URL: "https://example.com", Author: "Site Author"}
	published := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	post := Post{
		Slug:        "hello-world",
		Title:       "Hello World",
		Content:     "# Heading\n\nBody paragraph.",
		Excerpt:     "A greeting",
		Tags:        "go, web",
		Published:   true,
		PublishedAt: &published,
	}

	out := PostMarkdown(post, cfg)

	if !strings.HasPrefix(out, "---\n") {
		t.Fatal("mirror should start with a frontmatter block")
	}
	parts := strings.SplitN(out, "---\n", 3)
	if len(parts) != 3 {
		t.Fatalf("mirror should contain a closed frontmatter block:\n%s", out)
	}
	header, body := parts[1], parts[2]

	for _, want := range []string{
		"title: Hello World",
		"date: \"2025-03-15\"",
		"author: Site Author",
		"summary: A greeting",
		"published: true",
		"type: article",
		"canonical: https://example.com/blog/hello-world",
		"- go",
		"- web",
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q:\n%s", want, header)
		}
	}
	if !strings.Contains(body, "# Heading") {
		t.Errorf("body missing content:\n%s", body)
	}
	if strings.Contains(body, "title:") {
		t.Error("header fields leaked into body")
	}
}

func TestPageMarkdown(t *testing.T) {
	cfg := SiteConfig{URL: "https://example.com", Author: "Site Author"}
	page := Page{Slug: "about", Title: "About", Summary: "Who we are", Body: "We build things."}

	out := PageMarkdown(page, cfg)
	for _, want := range []string{
		"title: About",
		"type: website",
		"canonical: https://example.com/about",
		"We build things.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page mirror missing %q:\n%s", want, out)
		}
	}
}

func TestLLMsIndex(t *testing.T) {
	a := setupTestApp(t)
	a.Config.Pages = []Page{{Slug: "about", Title: "About", Summary: "Who we are"}}
	p := seedPost(t, a, "Indexed Post", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/llms.txt", nil)
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	if err := a.handleLLMs(c); err != nil {
		t.Fatalf("handleLLMs failed: %v", err)
	}

	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"# Folio Test",
		"[About](/about.md)",
		"[Indexed Post](/blog/" + p.Slug + ".md)",
		"RSS: https://example.com/api/rss",
		"?format=json",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("llms.txt missing %q:\n%s", want, body)
		}
	}
}

func TestPostMarkdownRoute(t *testing.T) {
	a := setupTestApp(t)
	p := seedPost(t, a, "Mirrored Post", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/blog/"+p.Slug+".md", nil)
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues(p.Slug + ".md")
	if err := a.handlePost(c); err != nil {
		t.Fatalf("handlePost failed: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != markdownContentType {
		t.Errorf("content type = %q, want %q", ct, markdownContentType)
	}
	if !strings.Contains(rec.Body.String(), "title: Mirrored Post") {
		t.Errorf("mirror body missing frontmatter:\n%s", rec.Body.String())
	}

	// Unknown slugs on a .md path still answer in markdown.
	req = httptest.NewRequest(http.MethodGet, "/blog/missing.md", nil)
	rec = httptest.NewRecorder()
	c = a.Echo.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("missing.md")
	if err := a.handlePost(c); err != nil {
		t.Fatalf("handlePost failed: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "# Not Found") {
		t.Error("missing mirror should 404 with a markdown body")
	}
}
