package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/useractivity/analytics/internal/api/handler"
	"github.com/useractivity/analytics/internal/api/middleware"
	"github.com/useractivity/analytics/internal/core/ports"
	"github.com/useractivity/analytics/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(registry ports.AnalyticsRepository, strict service.Strictness, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.RequestMetrics())

	// --- Dependencies ---
	analyticsService := service.NewAnalyticsService(registry, strict, log)
	statusService := service.NewStatusService(analyticsService, log)

	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	statusHandler := handler.NewStatusHandler(statusService)

	// --- Analytics routes ---
	e.POST("/register", analyticsHandler.Register)
	e.POST("/recordSession", analyticsHandler.RecordSession)
	e.GET("/totalActivity", analyticsHandler.TotalActivity)
	e.GET("/inactiveUsers", analyticsHandler.InactiveUsers)
	e.GET("/monthlyActivity", analyticsHandler.MonthlyActivity)
	e.GET("/userSessions", analyticsHandler.UserSessions)

	// --- Status routes ---
	e.GET("/userStatus", statusHandler.UserStatus)
	e.GET("/lastSessionDate", statusHandler.LastSessionDate)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(registry)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – registry snapshot
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
