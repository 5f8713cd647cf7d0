package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
)

// SetupHealthRouter registers liveness, store readiness and the metrics scrape.
func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler, metricsHandler http.Handler) {
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/health/store", healthHandler.CheckStoreHealth)
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}
