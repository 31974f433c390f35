package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/premios/awards-api/internal/core/domain"
	"github.com/premios/awards-api/internal/core/ports"
)

// UserHandler serves authenticated account lookups.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the account of the authenticated caller.
//
// @Summary      Current account
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	subject, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// GetByUsername returns an arbitrary account. Admin only; the RBAC middleware
// enforces that before this handler runs.
//
// @Summary      Look up an account
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      404       {object}  map[string]string
// @Router       /admin/users/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.users.FindByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}
