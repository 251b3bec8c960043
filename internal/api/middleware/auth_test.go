package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/service"
)

func newTestTokens() *service.TokenService {
	return service.NewTokenService([]byte("secret"), "http://localhost:8080", 5*time.Minute, time.Hour, nil, zerolog.Nop())
}

func testPrincipal() *domain.Principal {
	return &domain.Principal{UUID: "uuid-1", Username: "alice", Authorities: []string{domain.RoleUser}}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := newTestTokens()
	raw, err := tokens.IssueAccess(testPrincipal())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(tokens)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("subject") != "uuid-1" {
			t.Fatalf("subject not set")
		}
		scope, _ := c.Get("scope").([]string)
		if len(scope) != 1 || scope[0] != domain.RoleUser {
			t.Fatalf("scope not set: %v", scope)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(newTestTokens())
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(newTestTokens())
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	e := echo.New()
	tokens := newTestTokens()
	refresh, err := tokens.IssueRefresh(testPrincipal())
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(tokens)
	err = mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token must not pass the access gate, got %v", err)
	}
}

func TestAuthMiddleware_WrongKeyRejected(t *testing.T) {
	e := echo.New()
	other := service.NewTokenService([]byte("other"), "http://localhost:8080", 5*time.Minute, time.Hour, nil, zerolog.Nop())
	raw, _ := other.IssueAccess(testPrincipal())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(newTestTokens())
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with another key, got %v", err)
	}
}
