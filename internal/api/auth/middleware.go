package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const telegramIDKey = "telegramID"

func AuthMiddlewareJWT(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateTokenJWT(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(telegramIDKey, claims.TelegramID)

		c.Next()
	}
}

// TelegramID returns the caller set by AuthMiddlewareJWT.
func TelegramID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(telegramIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
