package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/utilibill/billing-system/internal/core/domain"
)

// RBAC rejects requests whose session role is not in the allowed set. The
// services re-check the role themselves; this keeps wrong-role traffic out
// of the handlers entirely.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFromContext(c)
			if session == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}
			if _, ok := allowed[session.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
