package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
)

// A citizen reports a flood, an NGO opens a task for it and a volunteer
// carries it out. Every step is visible to the next role through the store.
func TestScenario_ReportToCompletedTask(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	opts := testOptions("e-")

	disasters := NewDisasterUseCase(store, &fakeBriefer{severity: entity.SeverityHigh}, 0, opts...)
	tasks := NewTaskUseCase(store, opts...)

	d, err := disasters.Report(ctx, "1", ReportDisasterInput{
		Type:        "Flood",
		Description: "River burst its banks near the school",
		Location:    "Riverside",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SeverityHigh, d.Severity)
	assert.Equal(t, entity.DisasterReported, d.Status)

	seen, err := disasters.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riverside", seen.Location)
	assert.Equal(t, "1", seen.ReportedBy)

	task, err := tasks.Create(ctx, "3", CreateTaskInput{DisasterID: d.ID, Description: "Move families to the shelter"})
	require.NoError(t, err)
	created, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskPending, created.Status)
	assert.Empty(t, created.VolunteerID)
	assert.Equal(t, "3", created.NGOID)
	assert.Equal(t, d.ID, created.DisasterID)

	open, err := tasks.Open(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids(open, taskID), task.ID)

	_, err = tasks.Accept(ctx, "2", task.ID)
	require.NoError(t, err)
	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskAccepted, got.Status)
	assert.Equal(t, "2", got.VolunteerID)

	_, err = tasks.Complete(ctx, task.ID)
	require.NoError(t, err)
	got, err = tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCompleted, got.Status)

	done, err := tasks.Missions(ctx, "2", entity.TaskCompleted)
	require.NoError(t, err)
	assert.Contains(t, ids(done, taskID), task.ID)
}
