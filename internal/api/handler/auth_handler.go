package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oaworkspace/oaclient/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login runs the login flow against the OA backend and persists the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.LoginOutcome
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	outcome, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcome)
}

// Logout clears the persisted token and session.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports whether a token is stored and returns the stored profile.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()
	resp := sessionResponse{Authenticated: h.authService.IsAuthenticated(ctx)}
	if user, ok := h.authService.CurrentUser(ctx); ok {
		resp.User = user
	}
	return c.JSON(http.StatusOK, resp)
}

// Reset is the recovery action offered after an unexpected failure: it
// clears all persisted session state so the UI can start over.
//
// @Summary      Reset session state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  resetResponse
// @Router       /api/session/reset [post]
func (h *AuthHandler) Reset(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resetResponse{Reset: true})
}
