package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resqnet/internal/domain/entity"
	"resqnet/internal/usecase"
	"resqnet/pkg/logger"
	"resqnet/pkg/response"
)

// RequireRole answers 403 unless the session holds one of the roles.
// It must run after AuthMiddleware.Authenticate.
func RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := GetSession(c)
			if err := usecase.Authorize(session, roles...); err != nil {
				if session != nil {
					logger.Warn("Role %s denied %s %s", session.Role, c.Request().Method, c.Path())
				}
				return response.Error(c, err)
			}
			return next(c)
		}
	}
}

// DashboardGate serves /dashboard/:slug only to the matching role. Anyone else
// is sent to the login page.
func DashboardGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !usecase.DashboardAllowed(GetSession(c), c.Param("slug")) {
			return c.Redirect(http.StatusSeeOther, usecase.LoginPath)
		}
		return next(c)
	}
}
