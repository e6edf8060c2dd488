package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RoleMiddleware allows only actors whose role is at least as privileged
// as maxRoleID (lower role_id = more privilege; 0 admin, 1 editor).
func RoleMiddleware(maxRoleID int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleID, ok := c.Get("role_id").(int64)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
			}

			if roleID > maxRoleID {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
			}

			return next(c)
		}
	}
}
