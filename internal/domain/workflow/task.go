package workflow

import (
	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

type TaskInput struct {
	DisasterID  string
	Description string
}

// CreateTask appends a pending, unassigned task. Whether DisasterID exists is
// checked by the caller.
func CreateTask(current []entity.Task, in TaskInput, ngoID string, stamp Stamp) ([]entity.Task, entity.Task) {
	t := entity.Task{
		ID:          stamp.ID,
		DisasterID:  in.DisasterID,
		NGOID:       ngoID,
		Description: in.Description,
		Status:      entity.TaskPending,
		CreatedAt:   stamp.At,
	}
	return appendCopy(current, t), t
}

// AcceptTask claims a task for a volunteer. Prior status is not checked and a
// second accept by another volunteer replaces the first one; callers that need
// to detect concurrent claims rely on the store's revision check.
func AcceptTask(current []entity.Task, taskID, volunteerID string) ([]entity.Task, error) {
	return setTask(current, taskID, func(t *entity.Task) {
		t.Status = entity.TaskAccepted
		t.VolunteerID = volunteerID
	})
}

// AssignTask is the coordinator-side counterpart of AcceptTask.
func AssignTask(current []entity.Task, taskID, volunteerID string) ([]entity.Task, error) {
	return AcceptTask(current, taskID, volunteerID)
}

// CompleteTask marks a task completed without checking it was accepted.
func CompleteTask(current []entity.Task, taskID string) ([]entity.Task, error) {
	return setTask(current, taskID, func(t *entity.Task) {
		t.Status = entity.TaskCompleted
	})
}

func RejectTask(current []entity.Task, taskID string) ([]entity.Task, error) {
	return setTask(current, taskID, func(t *entity.Task) {
		t.Status = entity.TaskRejected
	})
}

func setTask(current []entity.Task, taskID string, fn func(*entity.Task)) ([]entity.Task, error) {
	next, found := update(current, func(t entity.Task) bool { return t.ID == taskID }, fn)
	if !found {
		return current, errors.NotFound("Task", nil)
	}
	return next, nil
}

func FindTask(tasks []entity.Task, id string) (entity.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return entity.Task{}, false
}

// OpenTasks are pending tasks nobody has claimed yet.
func OpenTasks(tasks []entity.Task) []entity.Task {
	return filter(tasks, func(t entity.Task) bool {
		return t.VolunteerID == "" && t.Status == entity.TaskPending
	})
}

// MissionsFor returns the volunteer's tasks in the given status.
func MissionsFor(tasks []entity.Task, volunteerID string, status entity.TaskStatus) []entity.Task {
	return filter(tasks, func(t entity.Task) bool {
		return t.VolunteerID == volunteerID && t.Status == status
	})
}

func TasksByNGO(tasks []entity.Task, ngoID string) []entity.Task {
	return filter(tasks, func(t entity.Task) bool { return t.NGOID == ngoID })
}

func TasksForDisaster(tasks []entity.Task, disasterID string) []entity.Task {
	return filter(tasks, func(t entity.Task) bool { return t.DisasterID == disasterID })
}
