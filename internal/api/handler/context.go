package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the token claims injected by the Auth middleware and
// performs a fast-fail check before any service call: the subject must be
// present, which proves the middleware ran.
func ctxClaims(c echo.Context) (subject string, scope []string, err error) {
	subject, _ = c.Get("subject").(string)
	if subject == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	scope, _ = c.Get("scope").([]string)
	return subject, scope, nil
}

// hasAuthority reports whether the scope carries the given authority.
func hasAuthority(scope []string, authority string) bool {
	for _, s := range scope {
		if s == authority {
			return true
		}
	}
	return false
}
