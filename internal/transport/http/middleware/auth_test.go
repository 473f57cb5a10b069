package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/neeraj476/notes-app/internal/domain"
	"github.com/neeraj476/notes-app/internal/transport/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	verify func(raw string) (string, error)
}

func (f *fakeVerifier) VerifyToken(raw string) (string, error) {
	return f.verify(raw)
}

// newEngine builds a minimal gin engine with the Auth gate protecting
// GET /protected. The handler echoes the userID from context so we can
// assert it was set.
func newEngine(v middleware.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(v), func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.GetString("userID"))
	})
	return r
}

func TestAuth_MissingCookie_Returns401(t *testing.T) {
	v := &fakeVerifier{verify: func(string) (string, error) {
		t.Fatal("verifier must not run without a cookie")
		return "", nil
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	newEngine(v).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns403(t *testing.T) {
	v := &fakeVerifier{verify: func(string) (string, error) {
		return "", domain.ErrTokenInvalid
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "tampered"})
	newEngine(v).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_ValidToken_PassesAndSetsUserID(t *testing.T) {
	const userID = "user-abc"
	var sawToken string
	v := &fakeVerifier{verify: func(raw string) (string, error) {
		sawToken = raw
		return userID, nil
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "good-token"})
	newEngine(v).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if sawToken != "good-token" {
		t.Errorf("verifier saw %q, want the cookie value", sawToken)
	}
	if got := w.Body.String(); got != userID {
		t.Errorf("body = %q, want %q", got, userID)
	}
}
