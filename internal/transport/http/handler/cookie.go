package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neeraj476/notes-app/internal/transport/http/middleware"
)

// The cookie intentionally outlives the 1h token: an expired token inside
// a live cookie answers 403 at the gate, which the SPA turns into a
// redirect to login.
const cookieMaxAge = 24 * 60 * 60

func setAuthCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, token, cookieMaxAge, "/", "", secure, true)
}

func clearAuthCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", secure, true)
}
