package folio

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jmaretta/folio/content"
	"github.com/jmaretta/folio/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	slug := c.Param("slug")
	if slug == "new" {
		return Render(c, views.AdminPostForm(a.site(), views.PostView{}, "", CsrfToken(c)))
	}
	post, err := a.Store.GetPostAny(slug)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminPostForm(a.site(), toPostView(post), post.Content, CsrfToken(c)))
}

// handleAdminSave upserts a post from the dashboard form. The body runs
// through the same frontmatter pipeline as the JSON API.
func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}

	form := func(name string) *string {
		if !c.Request().PostForm.Has(name) {
			return nil
		}
		v := c.FormValue(name)
		return &v
	}
	tags := form("tags")
	if tags != nil {
		cleaned := JoinTags(FilterEmpty(strings.Split(*tags, ",")))
		tags = &cleaned
	}

	published := c.FormValue("published") != ""
	featured := c.FormValue("featured") != ""
	upd := content.Update{
		Title:      form("title"),
		Content:    form("content"),
		Excerpt:    form("excerpt"),
		Tags:       tags,
		CoverImage: form("cover_image"),
		Published:  &published,
		Featured:   &featured,
	}

	slug := strings.TrimSpace(c.FormValue("slug"))
	var err error
	if slug == "" {
		_, err = a.Store.CreatePost(upd)
	} else {
		_, err = a.Store.UpdatePost(slug, upd)
		if err == ErrNotFound {
			_, err = a.Store.CreatePost(upd)
		}
	}
	if err != nil {
		if err == ErrTitleRequired {
			return c.Redirect(http.StatusSeeOther, "/admin?msg=Title+is+required.")
		}
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin?msg=saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	if err := a.Store.DeletePost(c.Param("slug")); err != nil && err != ErrNotFound {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListPosts(ListOptions{})
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.site(), toPostViews(posts), msg, CsrfToken(c)))
}
