package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the authenticated
// user has one of the specified roles. It assumes Authenticate already ran
// and stored the role in the context; a missing role therefore means a
// wiring mistake and is rejected the same way as a wrong one. The gate
// never silently allows: a mismatch is always a 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"status":  "error",
					"message": "forbidden",
				})
			}
			return next(c)
		}
	}
}
