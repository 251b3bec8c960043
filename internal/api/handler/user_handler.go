package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-service/internal/api/metrics"
	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  principalResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := h.userService.Register(c.Request().Context(), ports.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, toPrincipalResponse(principal))
}

// Me returns the authenticated caller's own identity.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  principalResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	subject, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	principal, err := h.userService.LoadByUUID(c.Request().Context(), subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPrincipalResponse(principal))
}

// Get returns a user by UUID.
//
// @Summary      Get a user by UUID
// @Tags         users
// @Produce      json
// @Param        uuid  path      string  true  "User UUID"
// @Success      200   {object}  principalResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{uuid} [get]
func (h *UserHandler) Get(c echo.Context) error {
	principal, err := h.userService.LoadByUUID(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPrincipalResponse(principal))
}

// Update changes a user's mutable fields. Callers may update themselves;
// admins may update anyone.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        uuid  path      string             true  "User UUID"
// @Param        body  body      updateUserRequest  true  "Updated fields"
// @Success      200   {object}  principalResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{uuid} [put]
func (h *UserHandler) Update(c echo.Context) error {
	subject, scope, err := ctxClaims(c)
	if err != nil {
		return err
	}

	target := c.Param("uuid")
	if target != subject && !hasAuthority(scope, domain.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := h.userService.Update(c.Request().Context(), target, ports.UpdateInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPrincipalResponse(principal))
}

// Delete removes a user account.
//
// @Summary      Delete a user
// @Tags         users
// @Param        uuid  path  string  true  "User UUID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{uuid} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("uuid")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// registrationResult condenses a registration error into a metric label.
func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "duplicate_username"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrCompromisedPassword):
		return "compromised_password"
	default:
		return "error"
	}
}
