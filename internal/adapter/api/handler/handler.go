package handler

import (
	"resqnet/internal/usecase"
)

var (
	authHandler      *AuthHandler
	dashboardHandler *DashboardHandler
	disasterHandler  *DisasterHandler
	taskHandler      *TaskHandler
	requestHandler   *RequestHandler
	alertHandler     *AlertHandler
	userHandler      *UserHandler
	chatHandler      *ChatHandler
	adminHandler     *AdminHandler
)

// UseCases groups what the HTTP handlers are built from.
type UseCases struct {
	Auth      *usecase.AuthUseCase
	Dashboard *usecase.DashboardUseCase
	Disaster  *usecase.DisasterUseCase
	Briefing  *usecase.BriefingUseCase
	Task      *usecase.TaskUseCase
	Request   *usecase.RequestUseCase
	Alert     *usecase.AlertUseCase
	User      *usecase.UserUseCase
	Chat      *usecase.ChatUseCase
	Snapshot  *usecase.SnapshotUseCase
}

func Setup(uc UseCases) {
	authHandler = NewAuthHandler(uc.Auth)
	dashboardHandler = NewDashboardHandler(uc.Dashboard)
	disasterHandler = NewDisasterHandler(uc.Disaster, uc.Briefing)
	taskHandler = NewTaskHandler(uc.Task)
	requestHandler = NewRequestHandler(uc.Request)
	alertHandler = NewAlertHandler(uc.Alert, uc.Auth)
	userHandler = NewUserHandler(uc.User)
	chatHandler = NewChatHandler(uc.Chat)
	adminHandler = NewAdminHandler(uc.Snapshot)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetDashboardHandler() *DashboardHandler {
	return dashboardHandler
}

func GetDisasterHandler() *DisasterHandler {
	return disasterHandler
}

func GetTaskHandler() *TaskHandler {
	return taskHandler
}

func GetRequestHandler() *RequestHandler {
	return requestHandler
}

func GetAlertHandler() *AlertHandler {
	return alertHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
