package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"appointments-server/internal/config"
	"appointments-server/internal/store"
	"appointments-server/internal/utils"
)

const userIDKey = "userID"

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Token not provided")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Token invalid")
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set(userIDKey, claims.UserID)

		c.Next()
	}
}

// ProviderOnly lets the request through when the authenticated user is a
// provider. It must run after AuthMiddleware.
func ProviderOnly(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			utils.Unauthorized(c, "Token not provided")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			utils.InternalServerError(c, "Failed to verify user")
			c.Abort()
			return
		}
		if user == nil || !user.Provider {
			utils.Unauthorized(c, "User is not a provider")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext returns the id AuthMiddleware stored on the request.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok && id != 0
}
