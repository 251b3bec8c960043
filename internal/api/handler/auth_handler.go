package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-service/internal/api/metrics"
	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	tokenService ports.TokenService
}

func NewAuthHandler(authService ports.AuthService, tokenService ports.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

// Login authenticates a credential pair and returns an access/refresh token pair.
//
// @Summary      Authenticate and obtain tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	access, err := h.tokenService.IssueAccess(principal)
	if err != nil {
		return err
	}
	metrics.TokensIssuedTotal.WithLabelValues(ports.TokenTypeAccess).Inc()

	refresh, err := h.tokenService.IssueRefresh(principal)
	if err != nil {
		return err
	}
	metrics.TokensIssuedTotal.WithLabelValues(ports.TokenTypeRefresh).Inc()

	return c.JSON(http.StatusOK, loginResponse{AccessToken: access, RefreshToken: refresh})
}

// Refresh exchanges a valid refresh token for a new access token. The new
// token reflects the user's current role and account state, so a user whose
// record was deleted since issuance gets a 404.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	access, err := h.tokenService.RefreshAccess(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenValidationFailuresTotal.WithLabelValues(metrics.TokenFailureReason(err)).Inc()
		}
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues(ports.TokenTypeAccess).Inc()
	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}
