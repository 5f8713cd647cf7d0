package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

func TestRequestUseCase_ResourceRequestLifecycle(t *testing.T) {
	uc := NewRequestUseCase(seededStore(t), testOptions("r-")...)
	ctx := context.Background()

	r, err := uc.CreateResourceRequest(ctx, "3", CreateResourceRequestInput{Type: "Boats", Quantity: "4", Description: "Flooded streets"})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, r.Status)

	mine, err := uc.ListResourceRequests(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	r, err = uc.ResolveResourceRequest(ctx, r.ID, entity.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestApproved, r.Status)

	r, err = uc.ResolveResourceRequest(ctx, r.ID, entity.RequestApproved)
	require.NoError(t, err, "repeating the decision is a no-op")
	assert.Equal(t, entity.RequestApproved, r.Status)

	_, err = uc.ResolveResourceRequest(ctx, r.ID, entity.RequestRejected)
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = uc.ResolveResourceRequest(ctx, r.ID, entity.RequestPending)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRequestUseCase_HelpRequestLifecycle(t *testing.T) {
	uc := NewRequestUseCase(seededStore(t), testOptions("h-")...)
	ctx := context.Background()

	h, err := uc.CreateHelpRequest(ctx, "1", CreateHelpRequestInput{Type: entity.HelpFood, Description: "Family of 4", Location: "Sector 7"})
	require.NoError(t, err)
	assert.Equal(t, entity.HelpPending, h.Status)

	mine, err := uc.ListHelpRequests(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	h, err = uc.ResolveHelpRequest(ctx, "h1", entity.HelpFulfilled)
	require.NoError(t, err)
	assert.Equal(t, entity.HelpFulfilled, h.Status)

	_, err = uc.ResolveHelpRequest(ctx, "h1", entity.HelpRejected)
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = uc.ResolveHelpRequest(ctx, "missing", entity.HelpRejected)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
