package folio

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmaretta/folio/content"
)

// postRequest is the JSON body for create and partial-update. Pointer
// fields distinguish "absent" from "present and zero", which the merge
// precedence depends on.
type postRequest struct {
	Title          *string `json:"title"`
	Slug           *string `json:"slug"`
	Content        *string `json:"content"`
	Excerpt        *string `json:"excerpt"`
	Tags           *string `json:"tags"`
	CoverImage     *string `json:"coverImage"`
	Published      *bool   `json:"published"`
	Featured       *bool   `json:"featured"`
	PublishedAt    *string `json:"publishedAt"`
	SEOTitle       *string `json:"seoTitle"`
	SEODescription *string `json:"seoDescription"`
	Author         *string `json:"author"`
}

func (r postRequest) toUpdate() content.Update {
	upd := content.Update{
		Title:          r.Title,
		Slug:           r.Slug,
		Content:        r.Content,
		Excerpt:        r.Excerpt,
		Tags:           r.Tags,
		CoverImage:     r.CoverImage,
		Published:      r.Published,
		Featured:       r.Featured,
		SEOTitle:       r.SEOTitle,
		SEODescription: r.SEODescription,
		Author:         r.Author,
	}
	if r.PublishedAt != nil {
		// An unparsable date degrades to "not supplied" and the stored
		// value survives.
		upd.PublishedAt = content.ParseDate(*r.PublishedAt)
	}
	return upd
}

// postJSON is the API projection of a post, including the derived display
// metadata.
type postJSON struct {
	ID             string     `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Excerpt        string     `json:"excerpt,omitempty"`
	Tags           string     `json:"tags,omitempty"`
	CoverImage     string     `json:"coverImage,omitempty"`
	Published      bool       `json:"published"`
	Featured       bool       `json:"featured"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	SEOTitle       string     `json:"seoTitle,omitempty"`
	SEODescription string     `json:"seoDescription,omitempty"`
	Author         string     `json:"author,omitempty"`
	Category       string     `json:"category"`
	WordCount      int        `json:"wordCount"`
	ReadingMinutes int        `json:"readingMinutes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toPostJSON(p Post) postJSON {
	words, minutes := content.EstimateReading(p.Content)
	return postJSON{
		ID:             p.ID,
		Slug:           p.Slug,
		Title:          p.Title,
		Content:        p.Content,
		Excerpt:        p.Excerpt,
		Tags:           p.Tags,
		CoverImage:     p.CoverImage,
		Published:      p.Published,
		Featured:       p.Featured,
		PublishedAt:    p.PublishedAt,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
		Author:         p.Author,
		Category:       content.Classify(p.Tags),
		WordCount:      words,
		ReadingMinutes: minutes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// requireAPIAuth admits an authenticated admin session or the admin token
// header, so non-browser clients can use the API.
func (a *App) requireAPIAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if IsAdmin(c) {
			return next(c)
		}
		token := c.Request().Header.Get("X-Admin-Token")
		if a.Config.AdminToken != "" &&
			subtle.ConstantTimeCompare([]byte(token), []byte(a.Config.AdminToken)) == 1 {
			return next(c)
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
}

// handleAPIListPosts lists posts with pagination and published/featured
// filters.
func (a *App) handleAPIListPosts(c echo.Context) error {
	opts := ListOptions{Page: 1, Limit: 50}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if v := c.QueryParam("published"); v != "" {
		p := v == "true"
		opts.Published = &p
	}
	if v := c.QueryParam("featured"); v != "" {
		f := v == "true"
		opts.Featured = &f
	}

	posts, err := a.Store.ListPosts(opts)
	if err != nil {
		return err
	}
	total, err := a.Store.CountPosts(opts)
	if err != nil {
		return err
	}

	out := make([]postJSON, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostJSON(p))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"posts": out,
		"total": total,
		"page":  opts.Page,
		"limit": opts.Limit,
	})
}

func (a *App) handleAPIGetPost(c echo.Context) error {
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, toPostJSON(post))
}

func (a *App) handleAPICreatePost(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	post, err := a.Store.CreatePost(req.toUpdate())
	if err != nil {
		if err == ErrTitleRequired {
			return echo.NewHTTPError(http.StatusBadRequest, "title is required")
		}
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, toPostJSON(post))
}

func (a *App) handleAPIUpdatePost(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	post, err := a.Store.UpdatePost(c.Param("slug"), req.toUpdate())
	if err != nil {
		switch err {
		case ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		case ErrTitleRequired:
			return echo.NewHTTPError(http.StatusBadRequest, "title is required")
		}
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, toPostJSON(post))
}

func (a *App) handleAPIDeletePost(c echo.Context) error {
	if err := a.Store.DeletePost(c.Param("slug")); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	a.Cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}
