package middleware

import (
	"log"
	"net/http"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
)

// CheckAdminPermissionMiddleware aborts requests whose user lacks the admin
// role.
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("Role")
		if !exists {
			log.Println("role missing on authenticated request")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "internal error",
			})
			c.Abort()
			return
		}
		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "permission denied",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
