// Package content implements the post normalization pipeline: frontmatter
// parsing, field reconciliation, and derived display metadata (reading time,
// category).
package content

import (
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the known fields of a post's embedded metadata block.
// Unrecognized keys are carried in Extra so callers never probe the known
// fields by string name.
type FrontMatter struct {
	Title          string
	Slug           string
	Excerpt        string
	Date           *time.Time
	Tags           []string
	Featured       *bool
	CoverImage     string
	SEOTitle       string
	SEODescription string
	Author         string
	Extra          map[string]any
}

// Parsed is the result of ParseFrontMatter.
type Parsed struct {
	// Content is the input with the leading metadata block removed, or the
	// input unchanged when no block was found.
	Content string
	Meta    FrontMatter
	// Found is true iff at least one key was extracted.
	Found bool
}

// envelope is the decode target for adrg/frontmatter. Alternate key
// spellings (excerpt/summary, date/publishedAt) collapse into one field
// after decoding.
type envelope struct {
	Title          string         `yaml:"title"`
	Slug           string         `yaml:"slug"`
	Excerpt        string         `yaml:"excerpt"`
	Summary        string         `yaml:"summary"`
	Date           string         `yaml:"date"`
	PublishedAt    string         `yaml:"publishedAt"`
	Tags           any            `yaml:"tags"`
	Featured       *bool          `yaml:"featured"`
	CoverImage     string         `yaml:"coverImage"`
	SEOTitle       string         `yaml:"seoTitle"`
	SEODescription string         `yaml:"seoDescription"`
	Author         string         `yaml:"author"`
	Extra          map[string]any `yaml:",inline"`
}

// ParseFrontMatter extracts a leading YAML metadata block from raw post
// text. It never fails: a malformed block returns the input verbatim with
// zero metadata. Malformed frontmatter is an expected input shape, not an
// error.
func ParseFrontMatter(raw string) Parsed {
	var env envelope
	body, err := frontmatter.Parse(strings.NewReader(raw), &env)
	if err != nil {
		return Parsed{Content: raw, Meta: FrontMatter{Extra: map[string]any{}}}
	}

	meta := env.toFrontMatter()
	return Parsed{
		Content: string(body),
		Meta:    meta,
		Found:   meta.hasAnyField(),
	}
}

func (env envelope) toFrontMatter() FrontMatter {
	excerpt := env.Excerpt
	if excerpt == "" {
		excerpt = env.Summary
	}
	date := env.Date
	if date == "" {
		date = env.PublishedAt
	}

	extra := env.Extra
	if extra == nil {
		extra = map[string]any{}
	}

	return FrontMatter{
		Title:          env.Title,
		Slug:           env.Slug,
		Excerpt:        excerpt,
		Date:           ParseDate(date),
		Tags:           normalizeTags(env.Tags),
		Featured:       env.Featured,
		CoverImage:     env.CoverImage,
		SEOTitle:       env.SEOTitle,
		SEODescription: env.SEODescription,
		Author:         env.Author,
		Extra:          extra,
	}
}

func (fm FrontMatter) hasAnyField() bool {
	return fm.Title != "" || fm.Slug != "" || fm.Excerpt != "" ||
		fm.Date != nil || len(fm.Tags) > 0 || fm.Featured != nil ||
		fm.CoverImage != "" || fm.SEOTitle != "" || fm.SEODescription != "" ||
		fm.Author != "" || len(fm.Extra) > 0
}

// normalizeTags accepts either a YAML list or a comma-separated string.
func normalizeTags(v any) []string {
	switch t := v.(type) {
	case []any:
		var tags []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					tags = append(tags, s)
				}
			}
		}
		return tags
	case string:
		var tags []string
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a calendar date from the layouts frontmatter blocks use
// in the wild. Returns nil when the string is empty or unparsable; the
// caller falls back to its stored value either way.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
