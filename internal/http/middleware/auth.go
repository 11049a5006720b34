package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskplane.app/api-server/common/logger"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/service"
	"taskplane.app/api-server/internal/store"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth verifies the bearer token and loads the caller from the
// database, so role or organization changes take effect on the next request
// rather than at token expiry.
func RequireAuth(tokens *service.TokenManager, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "no authentication token provided",
			})
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "invalid or expired token",
			})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"status":  "error",
					"message": "user not found",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "failed to authenticate request",
			})
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			UserID:         logger.Ptr(user.ID),
			OrganizationID: logger.Ptr(user.OrganizationID),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// WithUser stores the authenticated caller in the context.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUser returns the authenticated caller, or nil outside RequireAuth.
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
