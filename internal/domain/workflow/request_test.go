package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

func TestResolveResourceRequest(t *testing.T) {
	current, _ := CreateResourceRequest(nil, ResourceInput{Type: "Heavy Machinery", Quantity: "2 Excavators"}, "3", Stamp{ID: "r1", At: time.Now()})
	require.Equal(t, entity.RequestPending, current[0].Status)

	approved, err := ResolveResourceRequest(current, "r1", entity.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestApproved, approved[0].Status)
	assert.Equal(t, entity.RequestPending, current[0].Status)

	again, err := ResolveResourceRequest(approved, "r1", entity.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestApproved, again[0].Status)

	flipped, err := ResolveResourceRequest(approved, "r1", entity.RequestRejected)
	assert.True(t, errors.Is(err, "CONFLICT"))
	assert.Equal(t, entity.RequestApproved, flipped[0].Status)
}

func TestResolveResourceRequest_CannotReopen(t *testing.T) {
	current := []entity.ResourceRequest{{ID: "r1", Status: entity.RequestRejected}}

	next, err := ResolveResourceRequest(current, "r1", entity.RequestPending)

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, entity.RequestRejected, next[0].Status)
}

func TestResolveResourceRequest_NotFound(t *testing.T) {
	_, err := ResolveResourceRequest(nil, "r9", entity.RequestApproved)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestResolveHelpRequest(t *testing.T) {
	current, created := CreateHelpRequest(nil, HelpInput{Type: entity.HelpMedical, Description: "smoke", Location: "Apt 402"}, "1", Stamp{ID: "h1", At: time.Now()})
	assert.Equal(t, "1", created.UserID)

	fulfilled, err := ResolveHelpRequest(current, "h1", entity.HelpFulfilled)
	require.NoError(t, err)
	assert.Equal(t, entity.HelpFulfilled, fulfilled[0].Status)

	_, err = ResolveHelpRequest(fulfilled, "h1", entity.HelpRejected)
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = ResolveHelpRequest(fulfilled, "h1", entity.HelpPending)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

// Walks every public transition from each terminal state and checks none of
// them yields Pending again.
func TestResolvedRequestsNeverReturnToPending(t *testing.T) {
	for _, terminal := range []entity.RequestStatus{entity.RequestApproved, entity.RequestRejected} {
		for _, decision := range []entity.RequestStatus{entity.RequestPending, entity.RequestApproved, entity.RequestRejected} {
			next, _ := ResolveResourceRequest([]entity.ResourceRequest{{ID: "r", Status: terminal}}, "r", decision)
			assert.NotEqual(t, entity.RequestPending, next[0].Status)
		}
	}
	for _, terminal := range []entity.HelpStatus{entity.HelpFulfilled, entity.HelpRejected} {
		for _, decision := range []entity.HelpStatus{entity.HelpPending, entity.HelpFulfilled, entity.HelpRejected} {
			next, _ := ResolveHelpRequest([]entity.HelpRequest{{ID: "h", Status: terminal}}, "h", decision)
			assert.NotEqual(t, entity.HelpPending, next[0].Status)
		}
	}
}
