package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/exceedauto/exceedauto-api/internal/auth"
)

// AuthMiddleware creates a gin.HandlerFunc that guards mutating routes.
// It resolves the bearer token against the in-memory session registry and
// stores the admin ID and the raw token in the request context (logout
// needs the token to revoke it).
func AuthMiddleware(sessions *auth.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		// The frontend sends "Bearer <token>", but a bare token works too.
		token = strings.TrimPrefix(token, "Bearer ")

		adminID, err := sessions.Validate(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissing):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is missing"})
			case errors.Is(err, auth.ErrExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("adminID", adminID)
		c.Set("token", token)
		c.Next()
	}
}
