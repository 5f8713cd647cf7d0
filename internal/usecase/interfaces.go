package usecase

import "time"

// Notifier pushes events to connected clients.
type Notifier interface {
	SendToUser(userID, msgType string, data interface{})
	Broadcast(msgType string, data interface{})
}

// Recorder receives operation outcomes for metrics.
type Recorder interface {
	ObserveWorkflow(operation string, err error)
	ObserveAI(capability string, err error)
	ObserveConflict(collection string)
	ObserveLogin(role string, err error)
}

// Event types pushed through the Notifier.
const (
	EventChatMessage = "chat.message"
	EventAlertIssued = "alert.issued"
)

type noopNotifier struct{}

func (noopNotifier) SendToUser(string, string, interface{}) {}
func (noopNotifier) Broadcast(string, interface{})          {}

type noopRecorder struct{}

func (noopRecorder) ObserveWorkflow(string, error) {}
func (noopRecorder) ObserveAI(string, error)       {}
func (noopRecorder) ObserveConflict(string)        {}
func (noopRecorder) ObserveLogin(string, error)    {}

// Limiter throttles actions per user.
type Limiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

type unlimited struct{}

func (unlimited) Allow(string, string) (bool, time.Duration) { return true, 0 }
