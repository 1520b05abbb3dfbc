package middleware

import (
	"net/http"
	"strings"

	"carelink/models"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Authenticator resolves a bearer token to the active session.
type Authenticator interface {
	Authenticate(token string) (models.Session, error)
}

// JWTAuthMiddleware requires a bearer token naming the active session. When
// optional is set, requests without a valid token pass through anonymously.
func JWTAuthMiddleware(auth Authenticator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sess, err := auth.Authenticate(tokenString)
		if err != nil {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session set by JWTAuthMiddleware.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}
