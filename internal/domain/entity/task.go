package entity

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskAccepted  TaskStatus = "Accepted"
	TaskCompleted TaskStatus = "Completed"
	TaskRejected  TaskStatus = "Rejected"
)

type Task struct {
	ID          string     `json:"id"`
	DisasterID  string     `json:"disasterId"`
	NGOID       string     `json:"ngoId"`
	VolunteerID string     `json:"volunteerId,omitempty"` // empty until accepted or assigned
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}
