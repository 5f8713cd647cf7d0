package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
)

func SetupRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	requestHandler := handler.GetRequestHandler()

	resources := e.Group("/v1/resource-requests")
	resources.Use(authMiddleware.Authenticate)
	resources.GET("", requestHandler.ListResourceRequests)
	resources.POST("", requestHandler.CreateResourceRequest, middleware.RequireRole(entity.RoleNGO))
	resources.POST("/:id/approve", requestHandler.ApproveResourceRequest, middleware.RequireRole(entity.RoleGovernment))
	resources.POST("/:id/reject", requestHandler.RejectResourceRequest, middleware.RequireRole(entity.RoleGovernment))

	responders := middleware.RequireRole(entity.RoleNGO, entity.RoleGovernment)

	help := e.Group("/v1/help-requests")
	help.Use(authMiddleware.Authenticate)
	help.GET("", requestHandler.ListHelpRequests)
	help.POST("", requestHandler.CreateHelpRequest, middleware.RequireRole(entity.RoleCitizen))
	help.POST("/:id/fulfill", requestHandler.FulfillHelpRequest, responders)
	help.POST("/:id/reject", requestHandler.RejectHelpRequest, responders)
}
