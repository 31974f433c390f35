package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/premios/awards-api/internal/core/domain"
)

// ctxPrincipal extracts the authenticated principal injected by the Auth
// middleware. The subject being non-empty proves the middleware ran; handlers
// behind it must not be reachable without it.
func ctxPrincipal(c echo.Context) (subject string, roles []domain.Role, err error) {
	subject, _ = c.Get("user_id").(string)
	if subject == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roles, _ = c.Get("roles").([]domain.Role)
	return subject, roles, nil
}
