package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

func component(fn func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(fn)
}

func esc(s string) string {
	return html.EscapeString(s)
}

func writeHead(w io.Writer, site Site, title, description string) error {
	if title == "" {
		title = site.Name
	} else {
		title = title + " | " + site.Name
	}
	if description == "" {
		description = site.Description
	}
	_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><title>%s</title><meta name="description" content="%s"/><link rel="stylesheet" href="/public/site.css"/></head><body>`,
		esc(title), esc(description))
	return err
}

func writeFoot(w io.Writer, site Site) error {
	_, err := fmt.Fprintf(w, `<footer><p>%s</p></footer></body></html>`, esc(site.Name))
	return err
}

func writePostCard(w io.Writer, p PostView) error {
	_, err := fmt.Fprintf(w, `<article><h2><a href="/blog/%s">%s</a></h2><p>%s</p><p><span>%s</span> · <span>%d min read</span></p></article>`,
		esc(p.Slug), esc(p.Title), esc(p.Excerpt), esc(p.Category), p.ReadingMinutes)
	return err
}

// Home renders the landing page: intro plus the published post list.
func Home(site Site, posts []PostView, activeTag string, tags []string, jsonLD string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, site, "", ""); err != nil {
			return err
		}
		if jsonLD != "" {
			fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, jsonLD)
		}
		fmt.Fprintf(w, `<header><h1>%s</h1><p>%s</p></header><main>`, esc(site.Name), esc(site.Description))
		if len(tags) > 0 {
			fmt.Fprint(w, `<nav aria-label="tags"><ul>`)
			for _, t := range tags {
				attr := ""
				if t == activeTag {
					attr = ` aria-current="true"`
				}
				fmt.Fprintf(w, `<li><a href="/?tag=%s"%s>%s</a></li>`, esc(t), attr, esc(t))
			}
			fmt.Fprint(w, `</ul></nav>`)
		}
		for _, p := range posts {
			if err := writePostCard(w, p); err != nil {
				return err
			}
		}
		fmt.Fprint(w, `</main>`)
		return writeFoot(w, site)
	})
}

// Post renders a single blog post page with its derived display metadata.
func Post(site Site, p PostView, related []PostView, jsonLD string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, site, p.Title, p.Excerpt); err != nil {
			return err
		}
		fmt.Fprintf(w, `<main><article><header><h1>%s</h1><p><time datetime="%s">%s</time> · <span>%s</span> · <span>%d min read</span></p></header>`,
			esc(p.Title), esc(p.Date), esc(p.Date), esc(p.Category), p.ReadingMinutes)
		if p.CoverImage != "" {
			fmt.Fprintf(w, `<img src="%s" alt=""/>`, esc(p.CoverImage))
		}
		if err := Markdown(p.Body).Render(ctx, w); err != nil {
			return err
		}
		fmt.Fprint(w, `</article>`)
		if len(related) > 0 {
			fmt.Fprint(w, `<aside><h2>Related</h2><ul>`)
			for _, r := range related {
				fmt.Fprintf(w, `<li><a href="/blog/%s">%s</a></li>`, esc(r.Slug), esc(r.Title))
			}
			fmt.Fprint(w, `</ul></aside>`)
		}
		if jsonLD != "" {
			fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, jsonLD)
		}
		fmt.Fprint(w, `</main>`)
		return writeFoot(w, site)
	})
}

// Page renders a static marketing page from markdown.
func Page(site Site, title, body string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, site, title, ""); err != nil {
			return err
		}
		fmt.Fprintf(w, `<main><h1>%s</h1>`, esc(title))
		if err := Markdown(body).Render(ctx, w); err != nil {
			return err
		}
		fmt.Fprint(w, `</main>`)
		return writeFoot(w, site)
	})
}

// AdminLogin renders the password prompt.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, site, "Admin", ""); err != nil {
			return err
		}
		fmt.Fprint(w, `<main><h1>Sign in</h1>`)
		if showError {
			fmt.Fprint(w, `<p role="alert">Wrong password.</p>`)
		}
		fmt.Fprintf(w, `<form method="post" action="/admin/login"><input type="hidden" name="_csrf" value="%s"/><input type="password" name="password" autofocus/><button type="submit">Sign in</button></form></main>`, esc(csrfToken))
		return writeFoot(w, site)
	})
}

// AdminDashboard renders the post list (drafts included) with edit links.
func AdminDashboard(site Site, posts []PostView, message, csrfToken string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, site, "Dashboard", ""); err != nil {
			return err
		}
		fmt.Fprint(w, `<main><h1>Dashboard</h1>`)
		if message != "" {
			fmt.Fprintf(w, `<p role="status">%s</p>`, esc(message))
		}
		fmt.Fprintf(w, `<form method="post" action="/admin/logout"><input type="hidden" name="_csrf" value="%s"/><button type="submit">Sign out</button></form>`, esc(csrfToken))
		fmt.Fprint(w, `<table><thead><tr><th>Title</th><th>Status</th><th>Date</th></tr></thead><tbody>`)
		for _, p := range posts {
			status := "draft"
			if p.Published {
				status = "published"
			}
			fmt.Fprintf(w, `<tr><td><a href="/admin/post/%s">%s</a></td><td>%s</td><td>%s</td></tr>`,
				esc(p.Slug), esc(p.Title), status, esc(p.Date))
		}
		fmt.Fprint(w, `</tbody></table></main>`)
		return writeFoot(w, site)
	})
}

// AdminPostForm renders the edit form for one post (or an empty form for a
// new one).
func AdminPostForm(site Site, p PostView, body, csrfToken string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, site, "Edit", ""); err != nil {
			return err
		}
		published := ""
		if p.Published {
			published = ` checked`
		}
		featured := ""
		if p.Featured {
			featured = ` checked`
		}
		fmt.Fprintf(w, `<main><h1>Edit post</h1><form method="post" action="/admin/save">`+
			`<input type="hidden" name="_csrf" value="%s"/>`+
			`<input type="hidden" name="slug" value="%s"/>`+
			`<label>Title <input name="title" value="%s"/></label>`+
			`<label>Excerpt <input name="excerpt" value="%s"/></label>`+
			`<label>Tags <input name="tags" value="%s"/></label>`+
			`<label>Cover image <input name="cover_image" value="%s"/></label>`+
			`<label>Published <input type="checkbox" name="published"%s/></label>`+
			`<label>Featured <input type="checkbox" name="featured"%s/></label>`+
			`<label>Content <textarea name="content" rows="24">%s</textarea></label>`+
			`<button type="submit">Save</button></form></main>`,
			esc(csrfToken), esc(p.Slug), esc(p.Title), esc(p.Excerpt),
			esc(joinTags(p.Tags)), esc(p.CoverImage), published, featured, esc(body))
		return writeFoot(w, site)
	})
}

// NotFound renders the HTML 404 page.
func NotFound(site Site) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, site, "Not found", ""); err != nil {
			return err
		}
		fmt.Fprint(w, `<main><h1>404</h1><p>That page does not exist.</p><p><a href="/">Back home</a></p></main>`)
		return writeFoot(w, site)
	})
}

// ServerError renders the HTML 500 page.
func ServerError(site Site) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, site, "Error", ""); err != nil {
			return err
		}
		fmt.Fprint(w, `<main><h1>Something went wrong</h1><p>Try again in a moment.</p></main>`)
		return writeFoot(w, site)
	})
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
