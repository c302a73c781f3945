package folio

import (
	"strings"
	"time"

	"github.com/jmaretta/folio/content"
)

// buildPost runs the content pipeline over a stored post and a partial
// update: the raw body is parsed for an embedded frontmatter block, the
// parsed fields are reconciled with the supplied and stored values, and the
// slug and publish timestamp invariants are applied.
func buildPost(stored Post, upd content.Update, now time.Time) Post {
	raw := stored.Content
	if upd.Content != nil {
		raw = *upd.Content
	}
	parsed := content.ParseFrontMatter(raw)

	merged := content.Merge(content.Record{
		Title:          stored.Title,
		Slug:           stored.Slug,
		Excerpt:        stored.Excerpt,
		Tags:           stored.Tags,
		CoverImage:     stored.CoverImage,
		Featured:       stored.Featured,
		PublishedAt:    stored.PublishedAt,
		SEOTitle:       stored.SEOTitle,
		SEODescription: stored.SEODescription,
		Author:         stored.Author,
	}, upd, parsed.Meta)

	p := stored
	p.Title = merged.Title
	p.Excerpt = merged.Excerpt
	p.Tags = merged.Tags
	p.CoverImage = merged.CoverImage
	p.Featured = merged.Featured
	p.PublishedAt = merged.PublishedAt
	p.SEOTitle = merged.SEOTitle
	p.SEODescription = merged.SEODescription
	p.Author = merged.Author
	p.Content = parsed.Content

	// Slug: an explicit override (frontmatter or request) wins; otherwise
	// the slug is regenerated only when the title changed.
	overridden := parsed.Meta.Slug != "" ||
		(upd.Slug != nil && strings.TrimSpace(*upd.Slug) != "")
	switch {
	case overridden:
		p.Slug = Slugify(merged.Slug)
	case merged.Title != stored.Title || p.Slug == "":
		p.Slug = Slugify(merged.Title)
	}

	if upd.Published != nil {
		p.Published = *upd.Published
	}
	// Publish transition sets the timestamp once; unrelated edits never
	// clear it.
	if p.Published && !stored.Published && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
	// Persisted timestamps are whole seconds; drop finer precision so the
	// built post round-trips through storage unchanged.
	if p.PublishedAt != nil {
		t := p.PublishedAt.Truncate(time.Second)
		p.PublishedAt = &t
	}
	p.UpdatedAt = now
	return p
}
