package folio

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postContact(t *testing.T, a *App, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func contactCounts(t *testing.T, a *App) (total, spam int) {
	t.Helper()
	err := a.Store.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(spam), 0) FROM contact_messages`).Scan(&total, &spam)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return total, spam
}

func TestContactStoresLegitimateMessage(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.POST("/api/contact", a.handleContact)

	rec := postContact(t, a, `{"name": "Ada", "email": "ada@example.com", "message": "I'd like to work together."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	total, spam := contactCounts(t, a)
	if total != 1 || spam != 0 {
		t.Errorf("total/spam = %d/%d, want 1/0", total, spam)
	}
}

func TestContactValidation(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.POST("/api/contact", a.handleContact)

	tests := []string{
		`{"email": "a@example.com", "message": "hi"}`,
		`{"name": "Ada", "message": "hi"}`,
		`{"name": "Ada", "email": "a@example.com"}`,
		`{"name": "Ada", "email": "not-an-email", "message": "hi"}`,
	}
	for _, body := range tests {
		if rec := postContact(t, a, body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	if total, _ := contactCounts(t, a); total != 0 {
		t.Errorf("invalid submissions should not be stored, got %d", total)
	}
}

func TestContactSpamIsSilentlyFlagged(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.POST("/api/contact", a.handleContact)

	tests := []string{
		// honeypot filled
		`{"name": "Bot", "email": "b@example.com", "message": "hello", "website": "http://bot.example"}`,
		// keyword
		`{"name": "Eve", "email": "e@example.com", "message": "Cheap seo services for your site"}`,
		// link stuffing
		`{"name": "Eve", "email": "e@example.com", "message": "https://a https://b https://c https://d"}`,
	}
	for _, body := range tests {
		rec := postContact(t, a, body)
		if rec.Code != http.StatusOK {
			t.Errorf("spam must still see success, got %d for %s", rec.Code, body)
		}
		if !strings.Contains(rec.Body.String(), `"success":true`) {
			t.Errorf("spam response should be indistinguishable: %s", rec.Body.String())
		}
	}

	total, spam := contactCounts(t, a)
	if total != 3 || spam != 3 {
		t.Errorf("total/spam = %d/%d, want 3/3", total, spam)
	}
}

func TestClassifySpam(t *testing.T) {
	tests := []struct {
		name string
		req  contactRequest
		want bool
	}{
		{"clean", contactRequest{Name: "Ada", Message: "Let's talk about a project"}, false},
		{"honeypot", contactRequest{Name: "Ada", Message: "hi", Website: "x"}, true},
		{"keyword in name", contactRequest{Name: "SEO services pro", Message: "hi"}, true},
		{"keyword case insensitive", contactRequest{Name: "Ada", Message: "CASINO wins await"}, true},
		{"three links ok", contactRequest{Name: "Ada", Message: "https://a https://b https://c"}, false},
		{"four links spam", contactRequest{Name: "Ada", Message: "https://a https://b https://c https://d"}, true},
	}
	for _, tt := range tests {
		if got := classifySpam(tt.req); got != tt.want {
			t.Errorf("%s: classifySpam = %v, want %v", tt.name, got, tt.want)
		}
	}
}
