package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photobook-backend/internal/shared/response"
)

// AdminMiddleware gates catalog mutations behind the admin role set by
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != "admin" {
			response.ErrorResponse(c, http.StatusForbidden, "Admin role required", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
