package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDKey is the gin context key holding the authenticated user's ID.
	UserIDKey = "userID"
	// TokenCookie carries the session token for browser clients.
	TokenCookie = "token"
	// LoginPath is where unauthenticated visitors of protected pages land.
	LoginPath = "/auth/login/"
)

type TokenParser interface {
	ParseToken(token string) (string, error)
}

// JWTAuthMiddleware resolves the caller from an Authorization bearer token or
// the token cookie. Requests without a valid token continue anonymously.
func JWTAuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(TokenCookie)
		}
		if token != "" {
			if userID, err := parser.ParseToken(token); err == nil {
				c.Set(UserIDKey, userID)
			}
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous callers to the login page. The original
// query is not carried over.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID, if any.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
