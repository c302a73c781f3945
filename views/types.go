// Package views renders the site's HTML as templ components. Markup is
// deliberately minimal and semantic; presentation lives in user CSS under
// the static dir.
package views

// Site carries the site-wide settings every component needs.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PostView is the display projection of a post: stored fields plus the
// derived metadata (reading time, category) computed per read.
type PostView struct {
	Title          string
	Slug           string
	Excerpt        string
	Tags           []string
	Category       string
	ReadingMinutes int
	WordCount      int
	Date           string // YYYY-MM-DD, empty for drafts
	CoverImage     string
	Body           string // markdown
	Published      bool
	Featured       bool
}
