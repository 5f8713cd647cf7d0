package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
	"resqnet/internal/usecase"
	"resqnet/pkg/errors"
	"resqnet/pkg/response"
	"resqnet/pkg/utils"
)

type DisasterHandler struct {
	disasterUseCase *usecase.DisasterUseCase
	briefingUseCase *usecase.BriefingUseCase
}

func NewDisasterHandler(disasterUseCase *usecase.DisasterUseCase, briefingUseCase *usecase.BriefingUseCase) *DisasterHandler {
	return &DisasterHandler{
		disasterUseCase: disasterUseCase,
		briefingUseCase: briefingUseCase,
	}
}

type reportDisasterRequest struct {
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"required,max=2000"`
	Location    string `json:"location" validate:"required"`
}

type updateDisasterStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListDisasters returns disasters newest first, paginated with page and limit.
func (h *DisasterHandler) ListDisasters(c echo.Context) error {
	disasters, err := h.disasterUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	p := utils.GetPaginationParams(c)
	return response.Paginated(c, utils.Page(disasters, p), int64(len(disasters)), p.Page, p.PageSize)
}

func (h *DisasterHandler) GetDisaster(c echo.Context) error {
	d, err := h.disasterUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, d)
}

func (h *DisasterHandler) ReportDisaster(c echo.Context) error {
	var req reportDisasterRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.GetSession(c)
	d, err := h.disasterUseCase.Report(c.Request().Context(), session.UserID, usecase.ReportDisasterInput{
		Type:        req.Type,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, d)
}

func (h *DisasterHandler) UpdateStatus(c echo.Context) error {
	var req updateDisasterStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	status := entity.DisasterStatus(req.Status)
	if !status.Valid() {
		return response.Error(c, errors.BadRequest("Unknown disaster status", nil))
	}

	d, err := h.disasterUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, d)
}

func (h *DisasterHandler) GetCoverage(c echo.Context) error {
	coverage, err := h.disasterUseCase.Coverage(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, coverage)
}

// GetBriefing returns the cached AI briefing; refresh=true regenerates it.
func (h *DisasterHandler) GetBriefing(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		b   *usecase.Briefing
		err error
	)
	if c.QueryParam("refresh") == "true" {
		b, err = h.briefingUseCase.Refresh(ctx)
	} else {
		b, err = h.briefingUseCase.Current(ctx)
	}
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, b)
}
