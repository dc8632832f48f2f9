package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogsphere/blogsphere/internal/models"
	"github.com/blogsphere/blogsphere/internal/tokens"
	"github.com/blogsphere/blogsphere/pkg/metrics"
)

// TokenVerifier validates a bearer credential and returns the bound user id
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// UserResolver loads the user a verified credential is bound to
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserKey is the gin context key the authenticated user is stored under.
const UserKey = "user"

// RequireAuth returns a Gin middleware that verifies Bearer tokens and
// resolves the bound user. Requests with a missing, malformed or expired
// credential, or one bound to an identity that no longer resolves, are
// rejected with 401 before the handler runs.
func RequireAuth(ver TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			metrics.AuthFailures.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "no token provided"})
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			metrics.AuthFailures.WithLabelValues("malformed").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid Authorization header"})
			return
		}

		userID, err := ver.Verify(token)
		if err != nil {
			if errors.Is(err, tokens.ErrExpiredToken) {
				metrics.AuthFailures.WithLabelValues("expired").Inc()
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token expired"})
				return
			}
			metrics.AuthFailures.WithLabelValues("invalid").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || u == nil {
			metrics.AuthFailures.WithLabelValues("unknown_user").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
			return
		}

		c.Set(UserKey, u)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth, or nil
// when the request was not authenticated.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
