package content

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestMergePrecedenceAllThreeDefined(t *testing.T) {
	stored := Record{Title: "stored"}
	upd := Update{Title: strPtr("supplied")}
	fm := FrontMatter{Title: "frontmatter"}

	got := Merge(stored, upd, fm)
	if got.Title != "frontmatter" {
		t.Errorf("Title = %q, want frontmatter to win", got.Title)
	}
}

func TestMergePrecedenceFrontmatterAbsent(t *testing.T) {
	got := Merge(Record{Title: "stored"}, Update{Title: strPtr("supplied")}, FrontMatter{})
	if got.Title != "supplied" {
		t.Errorf("Title = %q, want supplied to win over stored", got.Title)
	}
}

func TestMergePrecedenceOnlyStored(t *testing.T) {
	got := Merge(Record{Title: "stored"}, Update{}, FrontMatter{})
	if got.Title != "stored" {
		t.Errorf("Title = %q, want stored", got.Title)
	}
}

func TestMergeEmptyFrontmatterStringDoesNotWin(t *testing.T) {
	// A frontmatter string field only wins when non-empty.
	got := Merge(Record{Excerpt: "stored"}, Update{}, FrontMatter{Excerpt: "  "})
	if got.Excerpt != "stored" {
		t.Errorf("Excerpt = %q, want stored value kept", got.Excerpt)
	}
}

func TestMergeSuppliedEmptyStringClears(t *testing.T) {
	got := Merge(Record{Excerpt: "stored"}, Update{Excerpt: strPtr("")}, FrontMatter{})
	if got.Excerpt != "" {
		t.Errorf("Excerpt = %q, want explicit clear", got.Excerpt)
	}
}

func TestMergeFeaturedTriState(t *testing.T) {
	tests := []struct {
		name   string
		stored bool
		fm     *bool
		want   bool
	}{
		{"explicit false overrides stored true", true, boolPtr(false), false},
		{"explicit true overrides stored false", false, boolPtr(true), true},
		{"absent preserves stored true", true, nil, true},
		{"absent preserves stored false", false, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(Record{Featured: tt.stored}, Update{}, FrontMatter{Featured: tt.fm})
			if got.Featured != tt.want {
				t.Errorf("Featured = %v, want %v", got.Featured, tt.want)
			}
		})
	}
}

func TestMergeTagsJoinedFromList(t *testing.T) {
	got := Merge(Record{Tags: "old"}, Update{}, FrontMatter{Tags: []string{"ai", "automation"}})
	if got.Tags != "ai, automation" {
		t.Errorf("Tags = %q, want %q", got.Tags, "ai, automation")
	}
}

func TestMergeTagsPassThroughWhenFrontmatterSilent(t *testing.T) {
	got := Merge(Record{Tags: "stored"}, Update{Tags: strPtr("a, b")}, FrontMatter{})
	if got.Tags != "a, b" {
		t.Errorf("Tags = %q, want supplied string unchanged", got.Tags)
	}
}

func TestMergeDateFallbacks(t *testing.T) {
	stored := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	fmDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	// Frontmatter date present: it wins.
	got := Merge(Record{PublishedAt: &stored}, Update{}, FrontMatter{Date: &fmDate})
	if got.PublishedAt == nil || !got.PublishedAt.Equal(fmDate) {
		t.Errorf("PublishedAt = %v, want frontmatter date", got.PublishedAt)
	}

	// Missing frontmatter date keeps the stored value.
	got = Merge(Record{PublishedAt: &stored}, Update{}, FrontMatter{})
	if got.PublishedAt == nil || !got.PublishedAt.Equal(stored) {
		t.Errorf("PublishedAt = %v, want stored date kept when absent", got.PublishedAt)
	}

	// A malformed date string never reaches Merge as a value: ParseDate
	// returns nil, so the stored value survives. Pinned deliberately —
	// invalid and missing dates are treated the same.
	parsed := ParseFrontMatter("---\ndate: bogus-date\n---\nBody")
	got = Merge(Record{PublishedAt: &stored}, Update{}, parsed.Meta)
	if got.PublishedAt == nil || !got.PublishedAt.Equal(stored) {
		t.Errorf("PublishedAt = %v, want stored date kept for malformed input", got.PublishedAt)
	}
}

func TestMergeDoesNotFabricateDates(t *testing.T) {
	got := Merge(Record{}, Update{}, FrontMatter{})
	if got.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil when nothing supplies a date", got.PublishedAt)
	}
}
