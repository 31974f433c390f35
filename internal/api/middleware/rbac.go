package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/premios/awards-api/internal/core/domain"
)

// RBAC enforces role-based access control: the caller's role set must
// intersect the allowed set. The check runs before the handler, explicitly,
// rather than being declared on it.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]domain.Role)
			for _, r := range roles {
				if _, ok := allowed[r]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
