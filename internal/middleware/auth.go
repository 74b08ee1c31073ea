package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/domain"
	"messaging-service/internal/response"
)

// CredentialResolver validates transport credentials and yields the user.
type CredentialResolver interface {
	Resolve(ctx context.Context, raw string) (*domain.User, error)
}

// Auth validates the Bearer token and stores the authenticated user in the
// request context.
func Auth(resolver CredentialResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "No authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.AbortError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid token")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// UserID extracts the authenticated user id set by Auth.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
