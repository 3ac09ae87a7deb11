package middleware

import (
	"log"
	"strings"

	"github.com/dhbw-wi22a/B2B-Backend/jwt"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware resolves the request identity when a valid bearer token is
// present. Requests without one pass through unauthenticated.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" {
			c.Header("Authorization", "")
			c.Next()
			return
		}

		userID, role, err := jwt.VerifyToken(&token, db)
		if err != nil {
			log.Printf("token verification failed: %v", err)
			c.Header("Authorization", "")
			c.Next()
			return
		}

		c.Header("Authorization", authHeader)
		c.Set("Token", token)
		c.Set("UserID", userID)
		c.Set("Role", role)
		c.Next()
	}
}
