package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rushikeshdhande/Library-Management-System/internal/utils"
)

const (
	ContextUserID = "userId"

	// SessionCookieName is the cookie the session JWT travels in.
	SessionCookieName = "token"
)

// AuthRequired resolves the session from the cookie, falling back to a
// Bearer header for non-browser clients.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please log in to access this resource."})
			return
		}

		userID, err := utils.ParseSessionToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Session is invalid or has expired."})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
