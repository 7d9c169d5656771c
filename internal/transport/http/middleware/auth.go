package middleware

import (
	"net/http"
	"strings"

	"github.com/aibekov/task-tracker/internal/token"
	"github.com/gin-gonic/gin"
)

const errUnauthenticated = "Unauthenticated"

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": errUnauthenticated,
	})
}

// Auth validates the Bearer token and sets "userID" in the gin context.
// Missing, malformed and expired tokens are all the same 401.
func Auth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthenticated(c)
			return
		}

		userID, err := issuer.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
