package folio

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmaretta/folio/content"
)

func setupTestApp(t *testing.T) *App {
	t.Helper()
	s := setupTestStore(t)
	cfg := SiteConfig{
		Name:        "Folio Test",
		URL:         "https://example.com",
		Description: "A test site",
		Author:      "Test Author",
	}
	cfg.setDefaults()
	return &App{
		Config: cfg,
		Echo:   echo.New(),
		Store:  s,
		Cache:  NewPostCache(s, time.Minute),
	}
}

func seedPost(t *testing.T, a *App, title string, published time.Time) Post {
	t.Helper()
	p, err := a.Store.CreatePost(content.Update{
		Title:       strPtr(title),
		Content:     strPtr("Full body of " + title),
		Excerpt:     strPtr("Excerpt of " + title),
		Published:   boolPtr(true),
		PublishedAt: timePtr(published),
	})
	if err != nil {
		t.Fatalf("seed post failed: %v", err)
	}
	a.Cache.Invalidate()
	return p
}

func getFeed(t *testing.T, a *App, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/rss"+query, nil)
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	if err := a.handleFeed(c); err != nil {
		t.Fatalf("handleFeed failed: %v", err)
	}
	return rec
}

func TestFeedContentTypes(t *testing.T) {
	a := setupTestApp(t)
	seedPost(t, a, "Only Post", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		query string
		want  string
	}{
		{"", "application/rss+xml; charset=utf-8"},
		{"?format=atom", "application/atom+xml; charset=utf-8"},
		{"?format=json", "application/feed+json; charset=utf-8"},
	}
	for _, tt := range tests {
		rec := getFeed(t, a, tt.query)
		if rec.Code != http.StatusOK {
			t.Errorf("%q: status = %d", tt.query, rec.Code)
		}
		if ct := rec.Header().Get(echo.HeaderContentType); ct != tt.want {
			t.Errorf("%q: content type = %q, want %q", tt.query, ct, tt.want)
		}
	}
}

func TestFeedIncludesEachPostOnce(t *testing.T) {
	a := setupTestApp(t)
	p1 := seedPost(t, a, "Alpha Post", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	p2 := seedPost(t, a, "Beta Post", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	for _, format := range []string{"", "?format=atom", "?format=json"} {
		body := getFeed(t, a, format).Body.String()
		for _, p := range []Post{p1, p2} {
			link := "https://example.com/blog/" + p.Slug
			if n := strings.Count(body, "<title>"+p.Title+"</title>"); format != "?format=json" && n != 1 {
				t.Errorf("format %q: title %q appears %d times", format, p.Title, n)
			}
			if !strings.Contains(body, link) {
				t.Errorf("format %q: missing link %s", format, link)
			}
		}
	}
}

func TestJSONFeedShape(t *testing.T) {
	a := setupTestApp(t)
	newest := seedPost(t, a, "Newest Post", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	seedPost(t, a, "Older Post", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	rec := getFeed(t, a, "?format=json&limit=1")
	var feed struct {
		Version string `json:"version"`
		Title   string `json:"title"`
		Items   []struct {
			ID          string `json:"id"`
			URL         string `json:"url"`
			ContentText string `json:"content_text"`
			Summary     string `json:"summary"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("invalid json feed: %v", err)
	}
	if feed.Version != "https://jsonfeed.org/version/1.1" {
		t.Errorf("version = %q", feed.Version)
	}
	if len(feed.Items) != 1 {
		t.Fatalf("limit=1 returned %d items", len(feed.Items))
	}
	wantID := "https://example.com/blog/" + newest.Slug
	if feed.Items[0].ID != wantID {
		t.Errorf("item id = %q, want %q", feed.Items[0].ID, wantID)
	}
	if feed.Items[0].ContentText == "" {
		t.Error("content included by default")
	}

	// Fresh decode target: Unmarshal reuses existing slice elements, which
	// would mask a field the response omits.
	rec = getFeed(t, a, "?format=json&content=false")
	var withoutContent struct {
		Items []struct {
			ContentText string `json:"content_text"`
			Summary     string `json:"summary"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &withoutContent); err != nil {
		t.Fatalf("invalid json feed: %v", err)
	}
	if withoutContent.Items[0].ContentText != "" {
		t.Error("content=false should omit item bodies")
	}
	if withoutContent.Items[0].Summary == "" {
		t.Error("summary should survive content=false")
	}
}

func TestRSSStructure(t *testing.T) {
	a := setupTestApp(t)
	seedPost(t, a, "Structured Post", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	body := getFeed(t, a, "").Body.String()
	for _, want := range []string{
		`<rss version="2.0"`,
		`xmlns:atom="http://www.w3.org/2005/Atom"`,
		`xmlns:content="http://purl.org/rss/1.0/modules/content/"`,
		"<channel>",
		"<content:encoded>",
		"Tue, 01 Apr 2025",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("rss output missing %q", want)
		}
	}
	if !strings.HasPrefix(body, "<?xml") {
		t.Error("rss output missing xml declaration")
	}
}

func TestFeedCapsAtDefaultLimit(t *testing.T) {
	a := setupTestApp(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < defaultFeedLimit+5; i++ {
		seedPost(t, a, "Post Number "+string(rune('A'+i)), base.Add(time.Duration(i)*time.Hour))
	}

	rec := getFeed(t, a, "?format=json")
	var feed struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("invalid json feed: %v", err)
	}
	if len(feed.Items) != defaultFeedLimit {
		t.Errorf("items = %d, want %d", len(feed.Items), defaultFeedLimit)
	}
}
