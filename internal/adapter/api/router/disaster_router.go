package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
	"resqnet/internal/infrastructure/ratelimit"
	"resqnet/internal/usecase"
)

func SetupDisasterRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter usecase.Limiter) {
	disasterHandler := handler.GetDisasterHandler()

	disasters := e.Group("/v1/disasters")
	disasters.Use(authMiddleware.Authenticate)

	disasters.GET("", disasterHandler.ListDisasters)
	disasters.GET("/coverage", disasterHandler.GetCoverage, middleware.RequireRole(entity.RoleGovernment))
	disasters.GET("/:id", disasterHandler.GetDisaster)
	disasters.POST("", disasterHandler.ReportDisaster,
		middleware.RequireRole(entity.RoleCitizen),
		middleware.RateLimit(limiter, ratelimit.ActionReportDisaster))
	disasters.PUT("/:id/status", disasterHandler.UpdateStatus, middleware.RequireRole(entity.RoleNGO, entity.RoleGovernment))

	briefing := e.Group("/v1/briefing")
	briefing.Use(authMiddleware.Authenticate, middleware.RequireRole(entity.RoleGovernment))
	briefing.GET("", disasterHandler.GetBriefing)
}
