package crawler

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the crawler stats endpoint and provides the tracking
// middleware.
type Handler struct {
	tracker *Tracker
	token   string
}

// NewHandler creates a Handler over the given tracker. The token guards the
// stats endpoint; requests without it are rejected.
func NewHandler(tracker *Tracker, token string) *Handler {
	return &Handler{tracker: tracker, token: token}
}

// Track is request middleware that records hits from known AI crawlers. It
// never blocks or fails the request it observes.
func (h *Handler) Track(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ua := c.Request().UserAgent()
		if name, ok := Detect(ua); ok {
			h.tracker.Record(name, c.Request().URL.Path, ua)
		}
		return next(c)
	}
}

// GetStats returns aggregate crawler activity for a trailing window.
// Requires the shared-secret token via the "token" query parameter or the
// X-Stats-Token header.
func (h *Handler) GetStats(c echo.Context) error {
	supplied := c.QueryParam("token")
	if supplied == "" {
		supplied = c.Request().Header.Get("X-Stats-Token")
	}
	if h.token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(h.token)) != 1 {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	hours := 24
	if v := c.QueryParam("hours"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}

	return c.JSON(http.StatusOK, h.tracker.Stats(time.Duration(hours)*time.Hour))
}
