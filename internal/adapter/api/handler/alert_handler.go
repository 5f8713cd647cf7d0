package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
	"resqnet/internal/usecase"
	"resqnet/pkg/response"
	"resqnet/pkg/utils"
)

type AlertHandler struct {
	alertUseCase *usecase.AlertUseCase
	authUseCase  *usecase.AuthUseCase
}

func NewAlertHandler(alertUseCase *usecase.AlertUseCase, authUseCase *usecase.AuthUseCase) *AlertHandler {
	return &AlertHandler{
		alertUseCase: alertUseCase,
		authUseCase:  authUseCase,
	}
}

type issueAlertRequest struct {
	Title    string `json:"title" validate:"max=120"`
	Message  string `json:"message" validate:"required"`
	Severity string `json:"severity" validate:"omitempty,oneof=Low Medium High Critical"`
}

func (h *AlertHandler) ListAlerts(c echo.Context) error {
	alerts, err := h.alertUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	p := utils.GetPaginationParams(c)
	return response.Paginated(c, utils.Page(alerts, p), int64(len(alerts)), p.Page, p.PageSize)
}

func (h *AlertHandler) IssueAlert(c echo.Context) error {
	var req issueAlertRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ctx := c.Request().Context()
	issuer, err := h.authUseCase.CurrentUser(ctx, middleware.GetSession(c))
	if err != nil {
		return response.Error(c, err)
	}

	a, err := h.alertUseCase.Issue(ctx, *issuer, usecase.IssueAlertInput{
		Title:    req.Title,
		Message:  req.Message,
		Severity: entity.Severity(req.Severity),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, a)
}
