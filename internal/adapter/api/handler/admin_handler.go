package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/usecase"
	"resqnet/pkg/response"
)

// AdminHandler serves government-only maintenance endpoints.
type AdminHandler struct {
	snapshotUseCase *usecase.SnapshotUseCase
}

func NewAdminHandler(snapshotUseCase *usecase.SnapshotUseCase) *AdminHandler {
	return &AdminHandler{
		snapshotUseCase: snapshotUseCase,
	}
}

// ExportSnapshot writes every collection to the configured snapshot sink.
func (h *AdminHandler) ExportSnapshot(c echo.Context) error {
	result, err := h.snapshotUseCase.Export(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

// PreviewSnapshot returns the snapshot document without storing it.
func (h *AdminHandler) PreviewSnapshot(c echo.Context) error {
	snap, err := h.snapshotUseCase.Build(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, snap)
}
