package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-service/internal/api/metrics"
	"github.com/veridian/identity-service/internal/core/ports"
)

// Auth validates the bearer access token and injects its claims into the
// request context. Refresh tokens are rejected here: the type check inside
// Validate refuses anything whose type claim is not "access".
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(parts[1], ports.TokenTypeAccess)
			if err != nil {
				metrics.TokenValidationFailuresTotal.WithLabelValues(metrics.TokenFailureReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token invalid")
			}

			c.Set("subject", claims.Subject)
			c.Set("scope", claims.Scope)

			return next(c)
		}
	}
}
