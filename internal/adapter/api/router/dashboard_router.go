package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
	"resqnet/internal/adapter/api/middleware"
)

// SetupDashboardRouter gates /v1/dashboard/:slug by role. Callers without a
// matching session are redirected to the login page instead of getting 401/403.
func SetupDashboardRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	dashboardHandler := handler.GetDashboardHandler()

	e.GET("/v1/dashboard/:slug", dashboardHandler.GetDashboard, authMiddleware.Identify, middleware.DashboardGate)
}
