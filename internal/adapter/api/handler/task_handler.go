package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/domain/entity"
	"resqnet/internal/usecase"
	"resqnet/pkg/errors"
	"resqnet/pkg/response"
)

type TaskHandler struct {
	taskUseCase *usecase.TaskUseCase
}

func NewTaskHandler(taskUseCase *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
	}
}

type createTaskRequest struct {
	DisasterID  string `json:"disasterId" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type assignTaskRequest struct {
	VolunteerID string `json:"volunteerId" validate:"required"`
}

// ListTasks returns every task, or only the caller's when mine=true is sent
// by an NGO coordinator.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.GetSession(c)

	var (
		tasks []entity.Task
		err   error
	)
	if c.QueryParam("mine") == "true" && session.Role == entity.RoleNGO {
		tasks, err = h.taskUseCase.ByNGO(ctx, session.UserID)
	} else {
		tasks, err = h.taskUseCase.List(ctx)
	}
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tasks)
}

func (h *TaskHandler) GetTask(c echo.Context) error {
	t, err := h.taskUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, t)
}

func (h *TaskHandler) ListOpenTasks(c echo.Context) error {
	tasks, err := h.taskUseCase.Open(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tasks)
}

// ListMissions returns the volunteer's tasks in ?status= (Accepted by default).
func (h *TaskHandler) ListMissions(c echo.Context) error {
	status := entity.TaskAccepted
	if s := c.QueryParam("status"); s != "" {
		status = entity.TaskStatus(s)
	}

	tasks, err := h.taskUseCase.Missions(c.Request().Context(), middleware.GetSession(c).UserID, status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tasks)
}

func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	t, err := h.taskUseCase.Create(c.Request().Context(), middleware.GetSession(c).UserID, usecase.CreateTaskInput{
		DisasterID:  req.DisasterID,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, t)
}

func (h *TaskHandler) AcceptTask(c echo.Context) error {
	t, err := h.taskUseCase.Accept(c.Request().Context(), middleware.GetSession(c).UserID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, t)
}

func (h *TaskHandler) CompleteTask(c echo.Context) error {
	t, err := h.taskUseCase.Complete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, t)
}

func (h *TaskHandler) RejectTask(c echo.Context) error {
	t, err := h.taskUseCase.Reject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, t)
}

func (h *TaskHandler) AssignTask(c echo.Context) error {
	var req assignTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, errors.BadRequest("volunteerId is required", err))
	}

	t, err := h.taskUseCase.Assign(c.Request().Context(), c.Param("id"), req.VolunteerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, t)
}
