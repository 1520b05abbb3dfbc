package middleware

import (
	"net/http"

	"carelink/models"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects requests whose session has none of roles. It must run
// after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, r := range roles {
			if sess.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "This action is not available to " + string(sess.Role) + " accounts",
		})
	}
}
