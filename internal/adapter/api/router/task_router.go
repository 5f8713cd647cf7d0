package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
)

func SetupTaskRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	taskHandler := handler.GetTaskHandler()

	volunteerOnly := middleware.RequireRole(entity.RoleVolunteer)
	ngoOnly := middleware.RequireRole(entity.RoleNGO)

	tasks := e.Group("/v1/tasks")
	tasks.Use(authMiddleware.Authenticate)

	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/open", taskHandler.ListOpenTasks)
	tasks.GET("/mine", taskHandler.ListMissions, volunteerOnly)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.POST("", taskHandler.CreateTask, ngoOnly)

	tasks.POST("/:id/accept", taskHandler.AcceptTask, volunteerOnly)
	tasks.POST("/:id/complete", taskHandler.CompleteTask, volunteerOnly)
	tasks.POST("/:id/reject", taskHandler.RejectTask, volunteerOnly)
	tasks.POST("/:id/assign", taskHandler.AssignTask, ngoOnly)
}
