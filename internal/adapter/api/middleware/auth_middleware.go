package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"resqnet/internal/usecase"
	"resqnet/pkg/errors"
	"resqnet/pkg/response"
)

const sessionContextKey = "session"

type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

// tokenFromRequest reads a Bearer token, falling back to the token query
// parameter for websocket upgrades where browsers cannot set headers.
func tokenFromRequest(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.QueryParam("token")
}

// Authenticate rejects requests without a live session.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := tokenFromRequest(c)
		if token == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		session, err := m.authUseCase.Authenticate(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(sessionContextKey, session)
		return next(c)
	}
}

// Identify attaches the session when the token is valid and otherwise lets the
// request through as Anonymous.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := tokenFromRequest(c); token != "" {
			if session, err := m.authUseCase.Authenticate(c.Request().Context(), token); err == nil {
				c.Set(sessionContextKey, session)
			}
		}
		return next(c)
	}
}

// GetSession returns the caller's session, or nil for Anonymous.
func GetSession(c echo.Context) *usecase.Session {
	session, _ := c.Get(sessionContextKey).(*usecase.Session)
	return session
}
