package middleware

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor(c)
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		c.Abort()
		httperr.Respond(c, httperr.Forbidden("forbidden_role"))
	}
}

// RequireStaff admits admin, medico and recepcion.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(domain.RoleAdmin, domain.RoleVeterinarian, domain.RoleFrontDesk)
}
