package usecase

import (
	"context"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/errors"
	"resqnet/pkg/logger"
)

type TaskUseCase struct {
	base
}

func NewTaskUseCase(store repository.EntityStore, opts ...Option) *TaskUseCase {
	return &TaskUseCase{base: newBase(store, opts)}
}

type CreateTaskInput struct {
	DisasterID  string
	Description string
}

// Create adds a pending task for an existing disaster.
func (uc *TaskUseCase) Create(ctx context.Context, ngoID string, input CreateTaskInput) (*entity.Task, error) {
	disasters, err := load[entity.Disaster](ctx, &uc.base, repository.DisastersKey)
	if err != nil {
		return nil, err
	}
	if _, ok := workflow.FindDisaster(disasters, input.DisasterID); !ok {
		uc.recorder.ObserveWorkflow("create_task", errors.InvalidReference("Disaster", input.DisasterID))
		return nil, errors.InvalidReference("Disaster", input.DisasterID)
	}

	stamp := uc.stamp()
	t, err := mutate(ctx, &uc.base, "create_task", repository.TasksKey,
		func(current []entity.Task) ([]entity.Task, entity.Task, error) {
			next, t := workflow.CreateTask(current, workflow.TaskInput{
				DisasterID:  input.DisasterID,
				Description: input.Description,
			}, ngoID, stamp)
			return next, t, nil
		})
	if err != nil {
		return nil, err
	}

	logger.Info("Task %s created by NGO %s for disaster %s", t.ID, ngoID, t.DisasterID)
	return &t, nil
}

func (uc *TaskUseCase) List(ctx context.Context) ([]entity.Task, error) {
	return load[entity.Task](ctx, &uc.base, repository.TasksKey)
}

func (uc *TaskUseCase) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	tasks, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := workflow.FindTask(tasks, id)
	if !ok {
		return nil, errors.NotFound("Task", nil)
	}
	return &t, nil
}

// Open lists pending tasks nobody has claimed yet.
func (uc *TaskUseCase) Open(ctx context.Context) ([]entity.Task, error) {
	tasks, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	return workflow.OpenTasks(tasks), nil
}

// Missions lists the tasks held by a volunteer in the given status.
func (uc *TaskUseCase) Missions(ctx context.Context, volunteerID string, status entity.TaskStatus) ([]entity.Task, error) {
	tasks, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	return workflow.MissionsFor(tasks, volunteerID, status), nil
}

func (uc *TaskUseCase) ByNGO(ctx context.Context, ngoID string) ([]entity.Task, error) {
	tasks, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	return workflow.TasksByNGO(tasks, ngoID), nil
}

func (uc *TaskUseCase) Accept(ctx context.Context, volunteerID, taskID string) (*entity.Task, error) {
	return uc.transition(ctx, "accept_task", taskID, func(current []entity.Task) ([]entity.Task, error) {
		return workflow.AcceptTask(current, taskID, volunteerID)
	})
}

func (uc *TaskUseCase) Complete(ctx context.Context, taskID string) (*entity.Task, error) {
	return uc.transition(ctx, "complete_task", taskID, func(current []entity.Task) ([]entity.Task, error) {
		return workflow.CompleteTask(current, taskID)
	})
}

func (uc *TaskUseCase) Reject(ctx context.Context, taskID string) (*entity.Task, error) {
	return uc.transition(ctx, "reject_task", taskID, func(current []entity.Task) ([]entity.Task, error) {
		return workflow.RejectTask(current, taskID)
	})
}

// Assign lets a coordinator hand a task to an online volunteer.
func (uc *TaskUseCase) Assign(ctx context.Context, taskID, volunteerID string) (*entity.Task, error) {
	users, err := load[entity.User](ctx, &uc.base, repository.UsersKey)
	if err != nil {
		return nil, err
	}
	volunteer, ok := workflow.FindUser(users, volunteerID)
	if !ok || volunteer.Role != entity.RoleVolunteer {
		return nil, errors.InvalidReference("Volunteer", volunteerID)
	}
	if !volunteer.IsOnline {
		return nil, errors.BadRequest(volunteer.Name+" is offline", nil)
	}

	return uc.transition(ctx, "assign_task", taskID, func(current []entity.Task) ([]entity.Task, error) {
		return workflow.AssignTask(current, taskID, volunteerID)
	})
}

func (uc *TaskUseCase) transition(ctx context.Context, operation, taskID string, fn func([]entity.Task) ([]entity.Task, error)) (*entity.Task, error) {
	t, err := mutate(ctx, &uc.base, operation, repository.TasksKey,
		func(current []entity.Task) ([]entity.Task, entity.Task, error) {
			next, err := fn(current)
			if err != nil {
				return nil, entity.Task{}, err
			}
			t, _ := workflow.FindTask(next, taskID)
			return next, t, nil
		})
	if err != nil {
		logger.LogWorkflowError(operation, taskID, err)
		return nil, err
	}
	return &t, nil
}
