package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/usecase"
	"resqnet/pkg/response"
)

type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
	}
}

// GetDashboard serves the caller's role dashboard. DashboardGate has already
// matched the slug to the session.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	d, err := h.dashboardUseCase.Compose(c.Request().Context(), middleware.GetSession(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, d)
}
