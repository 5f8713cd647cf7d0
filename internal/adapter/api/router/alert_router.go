package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
	"resqnet/internal/infrastructure/ratelimit"
	"resqnet/internal/usecase"
)

func SetupAlertRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter usecase.Limiter) {
	alertHandler := handler.GetAlertHandler()

	alerts := e.Group("/v1/alerts")
	alerts.Use(authMiddleware.Authenticate)
	alerts.GET("", alertHandler.ListAlerts)
	alerts.POST("", alertHandler.IssueAlert,
		middleware.RequireRole(entity.RoleGovernment),
		middleware.RateLimit(limiter, ratelimit.ActionIssueAlert))
}
