package folio

import "time"

// Post is the canonical content entity stored in SQLite.
type Post struct {
	ID             string
	Slug           string
	Title          string
	Content        string
	Excerpt        string
	Tags           string // comma-separated
	CoverImage     string
	Published      bool
	Featured       bool
	PublishedAt    *time.Time
	SEOTitle       string
	SEODescription string
	Author         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Link returns the post's canonical site-relative path.
func (p Post) Link() string {
	return "/blog/" + p.Slug
}

// FeedDate is the timestamp a feed item carries: the publish time when set,
// otherwise the creation time. Never zero for a stored post.
func (p Post) FeedDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// Description is the post's excerpt, falling back to its title so feed
// items never carry an empty description.
func (p Post) Description() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	return p.Title
}

// Page is a static marketing page served at /<slug> and mirrored at
// /<slug>.md.
type Page struct {
	Slug    string
	Title   string
	Summary string
	Body    string // markdown
}

// Image describes an uploaded image stored under the static uploads dir.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// ContactMessage is a contact form submission. Spam-flagged messages are
// kept for review but the submitter is still told the send succeeded.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Spam      bool
	CreatedAt time.Time
}
