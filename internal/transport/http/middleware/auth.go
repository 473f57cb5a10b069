package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName carries the session JWT. The cookie outlives the token (24h
// vs 1h), so an expired token inside a live cookie is an expected case and
// answers 403, which clients handle by redirecting to login.
const CookieName = "authToken"

const (
	errMissingToken = "Unauthorized. Please log in."
	errInvalidToken = "Invalid or expired token."
)

// TokenVerifier is the subset of the auth usecase the gate needs.
type TokenVerifier interface {
	VerifyToken(raw string) (string, error)
}

// Auth gates every note and profile endpoint. A missing cookie is 401, a
// bad or expired token 403; on success the authenticated user id is set in
// the gin context and handlers must take identity from there only, never
// from the request body.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errMissingToken})
			return
		}

		userID, err := verifier.VerifyToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": errInvalidToken})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
