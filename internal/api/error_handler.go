package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/api/middleware"
	"github.com/oaworkspace/oaclient/internal/core/domain"
)

// consoleError is the body of every console error: {"error": "..."}.
type consoleError struct {
	Error    string `json:"error"`
	Recovery string `json:"recovery,omitempty"`
}

// NewHTTPErrorHandler renders domain errors as JSON with a matching status.
// Causes of unexpected errors are logged, never sent to the UI shell.
// Responses already started (the SSE stream) are left alone. Recovered
// panics get the reset action as their way out.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var (
			status int
			body   consoleError
			pe     *middleware.PanicError
		)
		if errors.As(err, &pe) {
			status = http.StatusInternalServerError
			body = consoleError{Error: "something went wrong", Recovery: middleware.ResetRoute}
		} else {
			status, body.Error = resolveError(err, log, c)
		}
		if err := c.JSON(status, body); err != nil {
			log.Debug().Err(err).Msg("write error response")
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Login failures carry the message meant for the user.
	var le *domain.LoginError
	if errors.As(err, &le) {
		return http.StatusUnauthorized, le.Message
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "username and password are required"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not logged in"
	case errors.Is(err, domain.ErrInvalidLanguage):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidLeave):
		return http.StatusUnprocessableEntity, err.Error()
	}

	var re *domain.RequestError
	if errors.As(err, &re) {
		log.Warn().
			Err(err).
			Str("kind", re.Kind.String()).
			Str("path", c.Path()).
			Msg("backend request failed")
		return http.StatusBadGateway, re.Error()
	}

	log.Error().
		Err(err).
		Str("route", c.Request().Method+" "+c.Path()).
		Msg("console request failed")
	return http.StatusInternalServerError, "internal server error"
}
