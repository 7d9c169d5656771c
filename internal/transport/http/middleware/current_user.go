package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/repository"
	"github.com/gin-gonic/gin"
)

// CurrentUser runs after Auth. It resolves the token's subject to a
// user record and stores it in the context, so handlers always receive
// a full domain identity rather than a raw token. A subject that no
// longer resolves is indistinguishable from a bad token: 401.
func CurrentUser(users repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				abortUnauthenticated(c)
				return
			}
			logger.ErrorContext(c.Request.Context(), "current user lookup", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error",
			})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// UserFromContext returns the user resolved by CurrentUser. Only valid
// on routes behind Auth + CurrentUser.
func UserFromContext(c *gin.Context) *domain.User {
	user, _ := c.MustGet("user").(*domain.User)
	return user
}
