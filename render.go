package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/jmaretta/folio/content"
	"github.com/jmaretta/folio/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// site converts the app config into the view model.
func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// toPostView projects a post into its display shape, computing the derived
// metadata (reading time, word count, category) per read.
func toPostView(p Post) views.PostView {
	words, minutes := content.EstimateReading(p.Content)
	date := ""
	if p.PublishedAt != nil {
		date = p.PublishedAt.Format("2006-01-02")
	}
	return views.PostView{
		Title:          p.Title,
		Slug:           p.Slug,
		Excerpt:        p.Description(),
		Tags:           ParseTags(p.Tags),
		Category:       content.Classify(p.Tags),
		ReadingMinutes: minutes,
		WordCount:      words,
		Date:           date,
		CoverImage:     p.CoverImage,
		Body:           p.Content,
		Published:      p.Published,
		Featured:       p.Featured,
	}
}

func toPostViews(posts []Post) []views.PostView {
	out := make([]views.PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostView(p))
	}
	return out
}
