package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mertcaneren0/arkyatirim/internal/auth"
)

const (
	// ContextKeyUserID holds the key for the admin user ID in Gin context.
	ContextKeyUserID = "userID"
)

// unauthorizedMessage is identical for every failure mode so a caller cannot
// tell which part of the token check failed.
const unauthorizedMessage = "Unauthorized"

// AuthMiddleware creates a Gin middleware for JWT authentication. Every
// mutating route runs behind it.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
			return
		}

		claims, err := auth.ValidateJWT(parts[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
			return
		}

		// Set admin info in context for handlers to use
		c.Set(ContextKeyUserID, claims.UserID)

		c.Next()
	}
}
