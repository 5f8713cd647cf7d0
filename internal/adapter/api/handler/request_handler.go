package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
	"resqnet/internal/usecase"
	"resqnet/pkg/response"
)

// RequestHandler serves NGO resource requests and citizen help requests.
type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
}

func NewRequestHandler(requestUseCase *usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
	}
}

type createResourceRequest struct {
	Type        string `json:"type" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	Description string `json:"description"`
}

type createHelpRequest struct {
	Type        string `json:"type" validate:"required,oneof=Medical Food Rescue Shelter"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

// ListResourceRequests shows NGO coordinators their own requests and everyone
// else all of them.
func (h *RequestHandler) ListResourceRequests(c echo.Context) error {
	session := middleware.GetSession(c)
	ngoID := ""
	if session.Role == entity.RoleNGO {
		ngoID = session.UserID
	}

	requests, err := h.requestUseCase.ListResourceRequests(c.Request().Context(), ngoID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, requests)
}

func (h *RequestHandler) CreateResourceRequest(c echo.Context) error {
	var req createResourceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	r, err := h.requestUseCase.CreateResourceRequest(c.Request().Context(), middleware.GetSession(c).UserID, usecase.CreateResourceRequestInput{
		Type:        req.Type,
		Quantity:    req.Quantity,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, r)
}

func (h *RequestHandler) ApproveResourceRequest(c echo.Context) error {
	return h.resolveResource(c, entity.RequestApproved)
}

func (h *RequestHandler) RejectResourceRequest(c echo.Context) error {
	return h.resolveResource(c, entity.RequestRejected)
}

func (h *RequestHandler) resolveResource(c echo.Context, decision entity.RequestStatus) error {
	r, err := h.requestUseCase.ResolveResourceRequest(c.Request().Context(), c.Param("id"), decision)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, r)
}

// ListHelpRequests shows citizens their own requests and responders all of them.
func (h *RequestHandler) ListHelpRequests(c echo.Context) error {
	session := middleware.GetSession(c)
	userID := ""
	if session.Role == entity.RoleCitizen {
		userID = session.UserID
	}

	requests, err := h.requestUseCase.ListHelpRequests(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, requests)
}

func (h *RequestHandler) CreateHelpRequest(c echo.Context) error {
	var req createHelpRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	r, err := h.requestUseCase.CreateHelpRequest(c.Request().Context(), middleware.GetSession(c).UserID, usecase.CreateHelpRequestInput{
		Type:        entity.HelpType(req.Type),
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, r)
}

func (h *RequestHandler) FulfillHelpRequest(c echo.Context) error {
	return h.resolveHelp(c, entity.HelpFulfilled)
}

func (h *RequestHandler) RejectHelpRequest(c echo.Context) error {
	return h.resolveHelp(c, entity.HelpRejected)
}

func (h *RequestHandler) resolveHelp(c echo.Context, decision entity.HelpStatus) error {
	r, err := h.requestUseCase.ResolveHelpRequest(c.Request().Context(), c.Param("id"), decision)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, r)
}
