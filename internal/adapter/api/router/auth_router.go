package router

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/handler"
	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/infrastructure/ratelimit"
	"resqnet/internal/usecase"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter usecase.Limiter) {
	authHandler := handler.GetAuthHandler()
	throttle := middleware.RateLimit(limiter, ratelimit.ActionLogin)

	auth := e.Group("/v1/auth")

	// Public routes
	auth.POST("/citizen/challenge", authHandler.StartCitizenChallenge, throttle)
	auth.POST("/citizen/verify", authHandler.VerifyCitizen, throttle)
	auth.POST("/login", authHandler.Login, throttle)

	// Protected routes
	auth.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
