package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshop/services"
)

// AuthMiddleware verifies the bearer token and stashes the admin's identity
// in the request context for downstream handlers.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set("adminID", claims.ID)
		c.Set("adminEmail", claims.Email)
		c.Set("adminRole", claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Runs after
// AuthMiddleware, which sets adminRole.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("adminRole")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	}
}
