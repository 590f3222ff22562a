package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminAuthMiddleware guards operator endpoints with a shared secret header.
func AdminAuthMiddleware(requiredToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(AdminTokenHeader)
		if supplied == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Admin token required"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(requiredToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid admin token"})
			return
		}
		c.Next()
	}
}
