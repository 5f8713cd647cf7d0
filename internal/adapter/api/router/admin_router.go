package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate, middleware.RequireRole(entity.RoleGovernment))

	admin.GET("/snapshots/preview", adminHandler.PreviewSnapshot)
	admin.POST("/snapshots", adminHandler.ExportSnapshot)
}
