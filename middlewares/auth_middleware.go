package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"daylog/utils"
)

// AuthMiddleware requires a Bearer token and stores its subject as the
// opaque user identity. No credential lookup happens here; the token
// issuer is trusted.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization header required"})
			return
		}

		userID, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// UserID reads the authenticated identity set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString("userID")
}
