package workflow

import (
	"fmt"

	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

type ResourceInput struct {
	Type        string
	Quantity    string
	Description string
}

func CreateResourceRequest(current []entity.ResourceRequest, in ResourceInput, ngoID string, stamp Stamp) ([]entity.ResourceRequest, entity.ResourceRequest) {
	r := entity.ResourceRequest{
		ID:          stamp.ID,
		NGOID:       ngoID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Status:      entity.RequestPending,
		Description: in.Description,
		CreatedAt:   stamp.At,
	}
	return appendCopy(current, r), r
}

// ResolveResourceRequest moves a pending request to Approved or Rejected.
// Repeating the same decision is a no-op; changing a decision fails with
// CONFLICT. No path leads back to Pending.
func ResolveResourceRequest(current []entity.ResourceRequest, id string, decision entity.RequestStatus) ([]entity.ResourceRequest, error) {
	if decision != entity.RequestApproved && decision != entity.RequestRejected {
		return current, errors.BadRequest("Resource requests can only be approved or rejected", nil)
	}

	var resolveErr error
	next, found := update(current, func(r entity.ResourceRequest) bool { return r.ID == id }, func(r *entity.ResourceRequest) {
		resolveErr = resolve(&r.Status, entity.RequestPending, decision, "Resource request "+id)
	})
	if !found {
		return current, errors.NotFound("Resource request", nil)
	}
	if resolveErr != nil {
		return current, resolveErr
	}
	return next, nil
}

type HelpInput struct {
	Type        entity.HelpType
	Description string
	Location    string
}

func CreateHelpRequest(current []entity.HelpRequest, in HelpInput, userID string, stamp Stamp) ([]entity.HelpRequest, entity.HelpRequest) {
	h := entity.HelpRequest{
		ID:          stamp.ID,
		UserID:      userID,
		Type:        in.Type,
		Description: in.Description,
		Location:    in.Location,
		Status:      entity.HelpPending,
		CreatedAt:   stamp.At,
	}
	return appendCopy(current, h), h
}

// ResolveHelpRequest follows the same one-way rule as ResolveResourceRequest
// with Fulfilled and Rejected as terminal states.
func ResolveHelpRequest(current []entity.HelpRequest, id string, decision entity.HelpStatus) ([]entity.HelpRequest, error) {
	if decision != entity.HelpFulfilled && decision != entity.HelpRejected {
		return current, errors.BadRequest("Help requests can only be fulfilled or rejected", nil)
	}

	var resolveErr error
	next, found := update(current, func(h entity.HelpRequest) bool { return h.ID == id }, func(h *entity.HelpRequest) {
		resolveErr = resolve(&h.Status, entity.HelpPending, decision, "Help request "+id)
	})
	if !found {
		return current, errors.NotFound("Help request", nil)
	}
	if resolveErr != nil {
		return current, resolveErr
	}
	return next, nil
}

func resolve[S ~string](status *S, pending, decision S, label string) error {
	switch *status {
	case pending:
		*status = decision
		return nil
	case decision:
		return nil
	default:
		return errors.Conflict(fmt.Sprintf("%s is already %s", label, *status))
	}
}

func HelpRequestsBy(requests []entity.HelpRequest, userID string) []entity.HelpRequest {
	return filter(requests, func(h entity.HelpRequest) bool { return h.UserID == userID })
}

func ResourceRequestsBy(requests []entity.ResourceRequest, ngoID string) []entity.ResourceRequest {
	return filter(requests, func(r entity.ResourceRequest) bool { return r.NGOID == ngoID })
}
