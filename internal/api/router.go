package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/oaworkspace/oaclient/docs"
	"github.com/oaworkspace/oaclient/internal/api/handler"
	"github.com/oaworkspace/oaclient/internal/api/middleware"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// metricsSubsystem prefixes the console's HTTP metrics.
const metricsSubsystem = "oaclient_console"

// Dependencies are the core services the console exposes.
type Dependencies struct {
	Auth     ports.AuthService
	Office   ports.OfficeService
	Status   ports.StatusSource
	Diag     ports.Diagnostician
	Language ports.LanguagePreference
	Storage  ports.KeyValueStore
	Log      zerolog.Logger

	// Registry receives the console HTTP metrics. Nil uses the default
	// registry, which also carries the client metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(middleware.Boundary(deps.Log))
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := deps.Log.Debug()
			if v.Error != nil {
				ev = deps.Log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("console request")
			return nil
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	officeHandler := handler.NewOfficeHandler(deps.Office)
	statusHandler := handler.NewStatusHandler(deps.Status, deps.Diag, deps.Language)
	languageHandler := handler.NewLanguageHandler(deps.Language)
	healthHandler := handler.NewHealthHandler(deps.Storage, deps.Status)

	// --- Health probes, metrics and docs ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – is storage reachable?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Session ---
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/session", authHandler.Session)
	api.POST("/session/reset", authHandler.Reset)

	// --- Connection status ---
	api.GET("/status", statusHandler.Current)
	api.GET("/status/stream", statusHandler.Stream)
	api.GET("/diagnostics", statusHandler.Diagnostics)

	// --- Preferences ---
	api.GET("/language", languageHandler.Get)
	api.PUT("/language", languageHandler.Set)

	// --- Office data (token required) ---
	requireSession := middleware.RequireSession(deps.Auth)
	api.GET("/workers", officeHandler.Workers, requireSession)
	api.POST("/attendance/sign-in", officeHandler.SignIn, requireSession)
	api.POST("/attendance/sign-out", officeHandler.SignOut, requireSession)
	api.GET("/meeting-rooms", officeHandler.MeetingRooms, requireSession)
	api.GET("/leave/types", officeHandler.LeaveTypes, requireSession)
	api.POST("/leave", officeHandler.ApplyLeave, requireSession)
	api.GET("/profile", officeHandler.Profile, requireSession)

	return e
}
