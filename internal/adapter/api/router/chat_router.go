package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
	"resqnet/internal/adapter/api/middleware"
)

// SetupChatRouter sets up the REST chat routes. Messages sent here are also
// pushed over the websocket hub.
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("/:peerId", chatHandler.GetConversation)
	chats.POST("/:peerId/messages", chatHandler.SendMessage)
}
