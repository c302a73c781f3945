package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
	// Website is a honeypot field: humans never see it, bots fill it.
	Website string `json:"website" form:"website"`
}

// spamKeywords trip the classifier on common solicitation phrasing. Ordered
// scan, same shape as the crawler signature list.
var spamKeywords = []string{
	"viagra", "casino", "crypto giveaway", "forex", "loan offer",
	"make money fast", "work from home", "seo services", "backlinks",
	"увеличение продаж", "100% guaranteed",
}

// classifySpam decides whether a submission gets silently flagged. The
// result is never revealed to the submitter.
func classifySpam(req contactRequest) bool {
	if req.Website != "" {
		return true
	}
	body := strings.ToLower(req.Name + " " + req.Message)
	for _, kw := range spamKeywords {
		if strings.Contains(body, kw) {
			return true
		}
	}
	// A message that is mostly links is not a human inquiry.
	if strings.Count(body, "http://")+strings.Count(body, "https://") > 3 {
		return true
	}
	return false
}

// handleContact accepts a contact form submission. Spam is stored flagged
// and the submitter still sees success, so senders get no signal their
// message was discarded.
func (a *App) handleContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email, and message are required")
	}
	if !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email address")
	}

	msg := ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Spam:    classifySpam(req),
	}
	if err := a.Store.SaveContactMessage(msg); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Thanks for reaching out. I'll get back to you soon.",
	})
}
