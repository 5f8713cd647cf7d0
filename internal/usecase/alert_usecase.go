package usecase

import (
	"context"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/errors"
	"resqnet/pkg/logger"
)

type AlertUseCase struct {
	base
}

func NewAlertUseCase(store repository.EntityStore, opts ...Option) *AlertUseCase {
	return &AlertUseCase{base: newBase(store, opts)}
}

type IssueAlertInput struct {
	Title    string
	Message  string
	Severity entity.Severity
}

// Issue records a broadcast alert under the issuer's display name and pushes
// it to every connected client.
func (uc *AlertUseCase) Issue(ctx context.Context, issuer entity.User, input IssueAlertInput) (*entity.EmergencyAlert, error) {
	if input.Message == "" {
		return nil, errors.BadRequest("Alert message is required", nil)
	}

	stamp := uc.stamp()
	a, err := mutate(ctx, &uc.base, "issue_alert", repository.AlertsKey,
		func(current []entity.EmergencyAlert) ([]entity.EmergencyAlert, entity.EmergencyAlert, error) {
			next, a := workflow.IssueAlert(current, workflow.AlertInput{
				Title:    input.Title,
				Message:  input.Message,
				Severity: input.Severity,
			}, issuer.Name, stamp)
			return next, a, nil
		})
	if err != nil {
		return nil, err
	}

	logger.Info("Alert %s issued by %s: %s", a.ID, issuer.Name, a.Title)
	uc.notifier.Broadcast(EventAlertIssued, a)
	return &a, nil
}

// List returns alerts newest first.
func (uc *AlertUseCase) List(ctx context.Context) ([]entity.EmergencyAlert, error) {
	alerts, err := load[entity.EmergencyAlert](ctx, &uc.base, repository.AlertsKey)
	if err != nil {
		return nil, err
	}
	return workflow.AlertsNewestFirst(alerts), nil
}
