package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jmaretta/folio/views"
)

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return Render(c, views.Home(a.site(), toPostViews(posts), tag, tags, WebsiteJsonLD(a.Config)))
}

// handlePost serves /blog/:slug and its markdown mirror at /blog/:slug.md.
func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	if mirror, ok := strings.CutSuffix(slug, ".md"); ok {
		return a.handlePostMarkdown(c, mirror)
	}

	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	related := relatedPosts(post, posts)
	return Render(c, views.Post(a.site(), toPostView(post), toPostViews(related), BlogPostingJsonLD(post, a.Config)))
}

// handleStaticPage serves the configured marketing pages at /:slug plus
// their markdown mirrors at /:slug.md.
func (a *App) handleStaticPage(c echo.Context) error {
	slug := c.Param("slug")
	if mirror, ok := strings.CutSuffix(slug, ".md"); ok {
		return a.handlePageMarkdown(c, mirror)
	}
	for _, page := range a.Config.Pages {
		if page.Slug == slug {
			return Render(c, views.Page(a.site(), page.Title, page.Body))
		}
	}
	return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
}

// relatedPosts finds posts sharing at least one tag with current.
func relatedPosts(current Post, posts []Post) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range ParseTags(current.Tags) {
		tagSet[normalizeTag(t)] = struct{}{}
	}
	var related []Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range ParseTags(p.Tags) {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// httpErrorHandler converts uncaught errors into format-appropriate bodies:
// JSON on /api/ paths, markdown on mirror paths, HTML pages otherwise.
// Internal error detail never reaches the client.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}

	path := c.Request().URL.Path
	switch {
	case strings.HasSuffix(path, ".md"):
		if code == http.StatusNotFound {
			_ = markdownNotFound(c)
			return
		}
		_ = c.Blob(code, markdownContentType, []byte("# Error\n\nSomething went wrong.\n"))
	case strings.HasPrefix(path, "/api/"):
		msg := "internal error"
		if he, ok := err.(*echo.HTTPError); ok && code < 500 {
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}
		_ = c.JSON(code, map[string]string{"error": msg})
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, views.NotFound(a.site()))
	case code >= 500:
		_ = RenderStatus(c, code, views.ServerError(a.site()))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
