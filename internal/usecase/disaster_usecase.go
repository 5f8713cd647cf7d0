package usecase

import (
	"context"
	"time"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/service"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/errors"
	"resqnet/pkg/logger"
)

type DisasterUseCase struct {
	base
	briefer   service.BriefingService
	aiTimeout time.Duration
}

func NewDisasterUseCase(store repository.EntityStore, briefer service.BriefingService, aiTimeout time.Duration, opts ...Option) *DisasterUseCase {
	if briefer == nil {
		briefer = service.DisabledBriefingService{}
	}
	return &DisasterUseCase{
		base:      newBase(store, opts),
		briefer:   briefer,
		aiTimeout: aiTimeout,
	}
}

type ReportDisasterInput struct {
	Type        string
	Description string
	Location    string
}

// Report rates the description with the AI adapter, falling back to Medium,
// and prepends the new disaster with status Reported.
func (uc *DisasterUseCase) Report(ctx context.Context, reporterID string, input ReportDisasterInput) (*entity.Disaster, error) {
	severity := uc.rateSeverity(ctx, input.Description)

	stamp := uc.stamp()
	d, err := mutate(ctx, &uc.base, "report_disaster", repository.DisastersKey,
		func(current []entity.Disaster) ([]entity.Disaster, entity.Disaster, error) {
			next, d := workflow.ReportDisaster(current, workflow.ReportInput{
				Type:        input.Type,
				Description: input.Description,
				Location:    input.Location,
			}, reporterID, severity, stamp)
			return next, d, nil
		})
	if err != nil {
		return nil, err
	}

	logger.Info("Disaster %s reported by %s with severity %s", d.ID, reporterID, d.Severity)
	return &d, nil
}

func (uc *DisasterUseCase) rateSeverity(ctx context.Context, description string) entity.Severity {
	if uc.aiTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.aiTimeout)
		defer cancel()
	}

	severity, err := uc.briefer.RateSeverity(ctx, description)
	if err == nil {
		if _, perr := entity.ParseSeverity(string(severity)); perr != nil {
			err = perr
		}
	}
	uc.recorder.ObserveAI("rate_severity", err)
	if err != nil {
		logger.Warn("Severity rating failed, using fallback: %v", err)
	}
	return service.SeverityOrFallback(severity, err)
}

// List returns every disaster, newest first.
func (uc *DisasterUseCase) List(ctx context.Context) ([]entity.Disaster, error) {
	disasters, err := load[entity.Disaster](ctx, &uc.base, repository.DisastersKey)
	if err != nil {
		return nil, err
	}
	return workflow.DisastersNewestFirst(disasters), nil
}

func (uc *DisasterUseCase) GetByID(ctx context.Context, id string) (*entity.Disaster, error) {
	disasters, err := load[entity.Disaster](ctx, &uc.base, repository.DisastersKey)
	if err != nil {
		return nil, err
	}
	d, ok := workflow.FindDisaster(disasters, id)
	if !ok {
		return nil, errors.NotFound("Disaster", nil)
	}
	return &d, nil
}

// ReportsBy lists the disasters a citizen reported, newest first.
func (uc *DisasterUseCase) ReportsBy(ctx context.Context, userID string) ([]entity.Disaster, error) {
	disasters, err := load[entity.Disaster](ctx, &uc.base, repository.DisastersKey)
	if err != nil {
		return nil, err
	}
	return workflow.DisastersNewestFirst(workflow.ReportsBy(disasters, userID)), nil
}

func (uc *DisasterUseCase) UpdateStatus(ctx context.Context, id string, status entity.DisasterStatus) (*entity.Disaster, error) {
	if !status.Valid() {
		return nil, errors.BadRequest("Invalid disaster status", nil)
	}

	d, err := mutate(ctx, &uc.base, "update_disaster_status", repository.DisastersKey,
		func(current []entity.Disaster) ([]entity.Disaster, entity.Disaster, error) {
			next, err := workflow.SetDisasterStatus(current, id, status)
			if err != nil {
				return nil, entity.Disaster{}, err
			}
			d, _ := workflow.FindDisaster(next, id)
			return next, d, nil
		})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Coverage is the government metrics view: every disaster with its task count
// and estimated coverage.
func (uc *DisasterUseCase) Coverage(ctx context.Context) ([]workflow.DisasterCoverage, error) {
	disasters, err := load[entity.Disaster](ctx, &uc.base, repository.DisastersKey)
	if err != nil {
		return nil, err
	}
	tasks, err := load[entity.Task](ctx, &uc.base, repository.TasksKey)
	if err != nil {
		return nil, err
	}
	return workflow.Coverage(workflow.DisastersNewestFirst(disasters), tasks), nil
}
