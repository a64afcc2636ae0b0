package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// ResetRoute is the recovery action offered to the user after a failure.
const ResetRoute = "POST /api/session/reset"

// PanicError is what Boundary hands to the HTTP error handler after a
// handler panicked.
type PanicError struct {
	Route string
	Err   error
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Route, e.Err)
}

func (e *PanicError) Unwrap() error { return e.Err }

// Boundary recovers panics raised while serving a request. The panic is
// logged with its stack and passed on as a *PanicError, which the console's
// error handler answers with 500 and ResetRoute.
func Boundary(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			route := c.Request().Method + " " + c.Path()
			log.Error().
				Err(err).
				Str("route", route).
				Bytes("stack", stack).
				Msg("request panicked")
			return &PanicError{Route: route, Err: err}
		},
	})
}
