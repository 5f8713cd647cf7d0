package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
	"resqnet/internal/usecase"
	"resqnet/pkg/errors"
	"resqnet/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type challengeRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role" validate:"required"`
}

func (h *AuthHandler) StartCitizenChallenge(c echo.Context) error {
	var req challengeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.authUseCase.StartCitizenChallenge(c.Request().Context(), req.Phone); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Verification code sent",
	})
}

func (h *AuthHandler) VerifyCitizen(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.VerifyCitizen(c.Request().Context(), req.Phone, req.Code)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

// Login signs in volunteers, NGO coordinators and government officials.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return response.Error(c, errors.BadRequest("Unknown role", err))
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, role)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	session := middleware.GetSession(c)
	if err := h.authUseCase.Logout(c.Request().Context(), session.ID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Successfully logged out",
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	session := middleware.GetSession(c)
	user, err := h.authUseCase.CurrentUser(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user":      user,
		"session":   session,
		"dashboard": usecase.DashboardPath(session.Role),
	})
}
