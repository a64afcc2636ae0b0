package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// RequireSession rejects requests while no token is stored. The backend
// remains the authority on whether the token is still valid.
func RequireSession(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.IsAuthenticated(c.Request().Context()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}
			return next(c)
		}
	}
}
