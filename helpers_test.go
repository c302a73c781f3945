package folio

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  ", "trimmed"},
		{"Already-Slugged", "already-slugged"},
		{"Symbols & Punctuation!!", "symbols-punctuation"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"123 Numbers", "123-numbers"},
		{"---leading and trailing---", "leading-and-trailing"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", []string{"blog", "my-post"}, "https://example.com/blog/my-post"},
		{"https://example.com/", []string{"blog"}, "https://example.com/blog"},
		{"https://example.com", nil, "https://example.com"},
		{"http://localhost:3000", []string{"about"}, "http://localhost:3000/about"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestParseTagsAndJoin(t *testing.T) {
	got := ParseTags("go, web ,  , sqlite")
	want := []string{"go", "web", "sqlite"}
	if len(got) != len(want) {
		t.Fatalf("ParseTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseTags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if ParseTags("  ") != nil {
		t.Error("blank input should return nil")
	}
	if JoinTags(want) != "go, web, sqlite" {
		t.Errorf("JoinTags = %q", JoinTags(want))
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Folio", URL: "https://example.com", Author: "Site Author"}
	post := Post{Slug: "my-post", Title: "My Post", Tags: "go"}

	out := BlogPostingJsonLD(post, cfg)
	for _, want := range []string{
		`"@type":"BlogPosting"`,
		`"headline":"My Post"`,
		`"url":"https://example.com/blog/my-post"`,
		`"name":"Site Author"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON-LD missing %s in %s", want, out)
		}
	}
}
