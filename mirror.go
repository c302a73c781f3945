package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

// mirrorHeader is the YAML frontmatter emitted at the top of every markdown
// mirror, so AI agents get the same metadata the HTML <head> carries.
type mirrorHeader struct {
	Title     string   `yaml:"title"`
	Date      string   `yaml:"date,omitempty"`
	Author    string   `yaml:"author,omitempty"`
	Summary   string   `yaml:"summary,omitempty"`
	Image     string   `yaml:"image,omitempty"`
	Tags      []string `yaml:"tags,omitempty"`
	Published bool     `yaml:"published"`
	Type      string   `yaml:"type"`
	Canonical string   `yaml:"canonical"`
}

func renderMirror(header mirrorHeader, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	if out, err := yaml.Marshal(header); err == nil {
		b.Write(out)
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// PostMarkdown renders a post's markdown mirror body.
func PostMarkdown(post Post, cfg SiteConfig) string {
	header := mirrorHeader{
		Title:     post.Title,
		Author:    post.Author,
		Summary:   post.Description(),
		Image:     post.CoverImage,
		Tags:      ParseTags(post.Tags),
		Published: post.Published,
		Type:      "article",
		Canonical: BuildURL(cfg.URL, "blog", post.Slug),
	}
	if header.Author == "" {
		header.Author = cfg.Author
	}
	if post.PublishedAt != nil {
		header.Date = post.PublishedAt.Format("2006-01-02")
	}
	return renderMirror(header, post.Content)
}

// PageMarkdown renders a static page's markdown mirror body.
func PageMarkdown(page Page, cfg SiteConfig) string {
	header := mirrorHeader{
		Title:     page.Title,
		Author:    cfg.Author,
		Summary:   page.Summary,
		Published: true,
		Type:      "website",
		Canonical: BuildURL(cfg.URL, page.Slug),
	}
	return renderMirror(header, page.Body)
}

const markdownContentType = "text/markdown; charset=utf-8"

func (a *App) handlePostMarkdown(c echo.Context, slug string) error {
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if err == ErrNotFound {
			return markdownNotFound(c)
		}
		return err
	}
	return c.Blob(http.StatusOK, markdownContentType, []byte(PostMarkdown(post, a.Config)))
}

func (a *App) handlePageMarkdown(c echo.Context, slug string) error {
	for _, page := range a.Config.Pages {
		if page.Slug == slug {
			return c.Blob(http.StatusOK, markdownContentType, []byte(PageMarkdown(page, a.Config)))
		}
	}
	return markdownNotFound(c)
}

// markdownNotFound keeps the markdown contract on mirror paths: a 404 is a
// markdown body, not a JSON error.
func markdownNotFound(c echo.Context) error {
	body := "# Not Found\n\nThe requested page does not exist. See /llms.txt for an index of available content.\n"
	return c.Blob(http.StatusNotFound, markdownContentType, []byte(body))
}

// handleLLMs serves /llms.txt: a plain-text index of the site's pages,
// every published post, and the feed URLs. Regenerated per request from
// live post data.
func (a *App) handleLLMs(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}

	cfg := a.Config
	var b strings.Builder
	b.WriteString("# " + cfg.Name + "\n\n")
	if cfg.Description != "" {
		b.WriteString("> " + cfg.Description + "\n\n")
	}

	if len(cfg.Pages) > 0 {
		b.WriteString("## Pages\n\n")
		for _, page := range cfg.Pages {
			b.WriteString("- [" + page.Title + "](/" + page.Slug + ".md)")
			if page.Summary != "" {
				b.WriteString(": " + page.Summary)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Blog\n\n")
	for _, p := range posts {
		b.WriteString("- [" + p.Title + "](/blog/" + p.Slug + ".md)")
		if p.Excerpt != "" {
			b.WriteString(": " + p.Excerpt)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n## Feeds\n\n")
	b.WriteString("- RSS: " + BuildURL(cfg.URL, "api", "rss") + "\n")
	b.WriteString("- Atom: " + BuildURL(cfg.URL, "api", "rss") + "?format=atom\n")
	b.WriteString("- JSON Feed: " + BuildURL(cfg.URL, "api", "rss") + "?format=json\n")

	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}
