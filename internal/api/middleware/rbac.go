package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces role-based access control over the scope claim injected by
// the Auth middleware.
func RBAC(allowedAuthorities ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedAuthorities))
	for _, a := range allowedAuthorities {
		allowed[a] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope, _ := c.Get("scope").([]string)
			for _, s := range scope {
				if _, ok := allowed[s]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
