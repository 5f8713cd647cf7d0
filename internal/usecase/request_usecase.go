package usecase

import (
	"context"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/logger"
)

// RequestUseCase covers both NGO resource requests and citizen help requests.
type RequestUseCase struct {
	base
}

func NewRequestUseCase(store repository.EntityStore, opts ...Option) *RequestUseCase {
	return &RequestUseCase{base: newBase(store, opts)}
}

type CreateResourceRequestInput struct {
	Type        string
	Quantity    string
	Description string
}

func (uc *RequestUseCase) CreateResourceRequest(ctx context.Context, ngoID string, input CreateResourceRequestInput) (*entity.ResourceRequest, error) {
	stamp := uc.stamp()
	r, err := mutate(ctx, &uc.base, "create_resource_request", repository.RequestsKey,
		func(current []entity.ResourceRequest) ([]entity.ResourceRequest, entity.ResourceRequest, error) {
			next, r := workflow.CreateResourceRequest(current, workflow.ResourceInput{
				Type:        input.Type,
				Quantity:    input.Quantity,
				Description: input.Description,
			}, ngoID, stamp)
			return next, r, nil
		})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResourceRequests returns every request, or only ngoID's when it is set.
func (uc *RequestUseCase) ListResourceRequests(ctx context.Context, ngoID string) ([]entity.ResourceRequest, error) {
	requests, err := load[entity.ResourceRequest](ctx, &uc.base, repository.RequestsKey)
	if err != nil {
		return nil, err
	}
	if ngoID != "" {
		return workflow.ResourceRequestsBy(requests, ngoID), nil
	}
	return requests, nil
}

func (uc *RequestUseCase) ResolveResourceRequest(ctx context.Context, id string, decision entity.RequestStatus) (*entity.ResourceRequest, error) {
	r, err := mutate(ctx, &uc.base, "resolve_resource_request", repository.RequestsKey,
		func(current []entity.ResourceRequest) ([]entity.ResourceRequest, entity.ResourceRequest, error) {
			next, err := workflow.ResolveResourceRequest(current, id, decision)
			if err != nil {
				return nil, entity.ResourceRequest{}, err
			}
			for _, r := range next {
				if r.ID == id {
					return next, r, nil
				}
			}
			return next, entity.ResourceRequest{}, nil
		})
	if err != nil {
		logger.LogWorkflowError("resolve_resource_request", id, err)
		return nil, err
	}
	logger.Info("Resource request %s is %s", id, r.Status)
	return &r, nil
}

type CreateHelpRequestInput struct {
	Type        entity.HelpType
	Description string
	Location    string
}

func (uc *RequestUseCase) CreateHelpRequest(ctx context.Context, userID string, input CreateHelpRequestInput) (*entity.HelpRequest, error) {
	stamp := uc.stamp()
	h, err := mutate(ctx, &uc.base, "create_help_request", repository.HelpRequestsKey,
		func(current []entity.HelpRequest) ([]entity.HelpRequest, entity.HelpRequest, error) {
			next, h := workflow.CreateHelpRequest(current, workflow.HelpInput{
				Type:        input.Type,
				Description: input.Description,
				Location:    input.Location,
			}, userID, stamp)
			return next, h, nil
		})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListHelpRequests returns every help request, or only userID's when it is set.
func (uc *RequestUseCase) ListHelpRequests(ctx context.Context, userID string) ([]entity.HelpRequest, error) {
	requests, err := load[entity.HelpRequest](ctx, &uc.base, repository.HelpRequestsKey)
	if err != nil {
		return nil, err
	}
	if userID != "" {
		return workflow.HelpRequestsBy(requests, userID), nil
	}
	return requests, nil
}

func (uc *RequestUseCase) ResolveHelpRequest(ctx context.Context, id string, decision entity.HelpStatus) (*entity.HelpRequest, error) {
	h, err := mutate(ctx, &uc.base, "resolve_help_request", repository.HelpRequestsKey,
		func(current []entity.HelpRequest) ([]entity.HelpRequest, entity.HelpRequest, error) {
			next, err := workflow.ResolveHelpRequest(current, id, decision)
			if err != nil {
				return nil, entity.HelpRequest{}, err
			}
			for _, h := range next {
				if h.ID == id {
					return next, h, nil
				}
			}
			return next, entity.HelpRequest{}, nil
		})
	if err != nil {
		logger.LogWorkflowError("resolve_help_request", id, err)
		return nil, err
	}
	return &h, nil
}
