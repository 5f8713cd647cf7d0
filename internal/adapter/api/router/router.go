package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/usecase"
)

// Setup registers every /v1 route. Handlers must already be built with
// handler.Setup.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter usecase.Limiter) {
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupDashboardRouter(e, authMiddleware)
	SetupDisasterRouter(e, authMiddleware, limiter)
	SetupTaskRouter(e, authMiddleware)
	SetupRequestRouter(e, authMiddleware)
	SetupAlertRouter(e, authMiddleware, limiter)
	SetupUserRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware)
}
