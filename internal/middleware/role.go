package middleware

import (
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// RequireAdmin aborts requests whose current user does not hold the
// administrator role. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("currentUser")
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
			c.Abort()
			return
		}
		user, ok := v.(*models.User)
		if !ok || user == nil || !user.IsAdmin() {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
