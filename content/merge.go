package content

import (
	"strings"
	"time"
)

// Update describes a partial-update request. Nil pointers mean "not
// supplied": the distinction between an absent field and a present zero
// value is load-bearing for the merge precedence below.
type Update struct {
	Title          *string
	Slug           *string
	Content        *string
	Excerpt        *string
	Tags           *string
	CoverImage     *string
	Published      *bool
	Featured       *bool
	PublishedAt    *time.Time
	SEOTitle       *string
	SEODescription *string
	Author         *string
}

// Record is the merged, storable field set a post carries. Content is not
// part of the merge: the caller takes it from ParseFrontMatter, which owns
// stripping the metadata block.
type Record struct {
	Title          string
	Slug           string
	Excerpt        string
	Tags           string
	CoverImage     string
	Featured       bool
	PublishedAt    *time.Time
	SEOTitle       string
	SEODescription string
	Author         string
}

// Merge reconciles a stored record, a partial-update request, and parsed
// frontmatter into one record. Precedence per field: frontmatter (present
// and non-empty) > supplied request field > stored value.
//
// Merge only decides field values. Slug regeneration on title change and
// the publish timestamp transition belong to the caller.
func Merge(stored Record, upd Update, fm FrontMatter) Record {
	fmTags := ""
	if len(fm.Tags) > 0 {
		fmTags = strings.Join(fm.Tags, ", ")
	}

	return Record{
		Title:          mergeString(fm.Title, upd.Title, stored.Title),
		Slug:           mergeString(fm.Slug, upd.Slug, stored.Slug),
		Excerpt:        mergeString(fm.Excerpt, upd.Excerpt, stored.Excerpt),
		Tags:           mergeString(fmTags, upd.Tags, stored.Tags),
		CoverImage:     mergeString(fm.CoverImage, upd.CoverImage, stored.CoverImage),
		Featured:       mergeBool(fm.Featured, upd.Featured, stored.Featured),
		PublishedAt:    mergeTime(fm.Date, upd.PublishedAt, stored.PublishedAt),
		SEOTitle:       mergeString(fm.SEOTitle, upd.SEOTitle, stored.SEOTitle),
		SEODescription: mergeString(fm.SEODescription, upd.SEODescription, stored.SEODescription),
		Author:         mergeString(fm.Author, upd.Author, stored.Author),
	}
}

// mergeString: a frontmatter string wins only when non-empty; a supplied
// string wins even when empty (explicit clear).
func mergeString(fm string, supplied *string, stored string) string {
	if strings.TrimSpace(fm) != "" {
		return fm
	}
	if supplied != nil {
		return *supplied
	}
	return stored
}

// mergeBool: booleans use presence, not truthiness. Frontmatter
// `featured: false` overrides a stored true.
func mergeBool(fm *bool, supplied *bool, stored bool) bool {
	if fm != nil {
		return *fm
	}
	if supplied != nil {
		return *supplied
	}
	return stored
}

// mergeTime: an unparsable frontmatter date arrives here as nil, so both
// "missing" and "malformed" keep the fallback. Dates are never fabricated.
func mergeTime(fm *time.Time, supplied *time.Time, stored *time.Time) *time.Time {
	if fm != nil {
		return fm
	}
	if supplied != nil {
		return supplied
	}
	return stored
}
