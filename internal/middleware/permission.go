package middleware

import (
	"net/http"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/model"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the caller holding at least one of
// the listed permissions. Admins always pass. The 403 body names the
// permissions that would have satisfied the gate.
func RequirePermission(required ...auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if err := auth.Authorize(p, required...); err != nil {
			resp := model.NewErrorResponse("You don't have permission to perform this action")
			for _, perm := range required {
				resp.RequiredPermissions = append(resp.RequiredPermissions, string(perm))
			}
			c.AbortWithStatusJSON(http.StatusForbidden, resp)
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("Admin access required"))
			return
		}
		c.Next()
	}
}
