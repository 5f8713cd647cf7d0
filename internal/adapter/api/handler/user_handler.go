package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/workflow"
	"resqnet/internal/usecase"
	"resqnet/pkg/errors"
	"resqnet/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type presenceRequest struct {
	Online *bool `json:"online" validate:"required"`
}

// ListUsers filters by ?role= (display name or slug).
func (h *UserHandler) ListUsers(c echo.Context) error {
	var role entity.Role
	if s := c.QueryParam("role"); s != "" {
		r, err := entity.ParseRole(s)
		if err != nil {
			return response.Error(c, errors.BadRequest("Unknown role", err))
		}
		role = r
	}

	users, err := h.userUseCase.List(c.Request().Context(), role)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}

// ListContacts returns the people the caller's role chats with.
func (h *UserHandler) ListContacts(c echo.Context) error {
	role := workflow.ContactRole(middleware.GetSession(c).Role)
	users, err := h.userUseCase.List(c.Request().Context(), role)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	u, err := h.userUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, u)
}

func (h *UserHandler) SetPresence(c echo.Context) error {
	var req presenceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	u, err := h.userUseCase.SetPresence(c.Request().Context(), middleware.GetSession(c).UserID, *req.Online)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, u)
}
