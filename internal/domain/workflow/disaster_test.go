package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

func TestReportDisaster_PrependsReported(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	current := []entity.Disaster{{ID: "d1"}}

	next, d := ReportDisaster(current, ReportInput{Type: "Flood", Description: "x", Location: "y"}, "1", entity.SeverityHigh, Stamp{ID: "d2", At: at})

	require.Len(t, next, 2)
	assert.Equal(t, "d2", next[0].ID)
	assert.Equal(t, entity.DisasterReported, d.Status)
	assert.Equal(t, entity.SeverityHigh, d.Severity)
	assert.Equal(t, "1", d.ReportedBy)
	assert.Equal(t, at, d.CreatedAt)
}

func TestSetDisasterStatus(t *testing.T) {
	current := []entity.Disaster{{ID: "d1", Status: entity.DisasterReported}}

	next, err := SetDisasterStatus(current, "d1", entity.DisasterVerified)
	require.NoError(t, err)
	assert.Equal(t, entity.DisasterVerified, next[0].Status)

	_, err = SetDisasterStatus(current, "d1", "Escalated")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = SetDisasterStatus(current, "d9", entity.DisasterResolved)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestCoverage(t *testing.T) {
	disasters := []entity.Disaster{
		{ID: "crit", Severity: entity.SeverityCritical},
		{ID: "high", Severity: entity.SeverityHigh},
		{ID: "none", Severity: entity.SeverityLow},
	}
	tasks := []entity.Task{
		{DisasterID: "crit"}, {DisasterID: "crit"},
		{DisasterID: "high"}, {DisasterID: "high"}, {DisasterID: "high"},
	}

	rows := Coverage(disasters, tasks)

	require.Len(t, rows, 3)
	assert.Equal(t, 70, rows[0].Coverage)
	assert.Equal(t, 2, rows[0].TaskCount)
	assert.Equal(t, 100, rows[1].Coverage)
	assert.Equal(t, 0, rows[2].Coverage)
}

func TestDisastersNewestFirst(t *testing.T) {
	base := time.Now()
	disasters := []entity.Disaster{
		{ID: "old", CreatedAt: base.Add(-time.Hour)},
		{ID: "new", CreatedAt: base},
	}

	sorted := DisastersNewestFirst(disasters)

	assert.Equal(t, "new", sorted[0].ID)
	assert.Equal(t, "old", disasters[0].ID)
}

func TestIssueAlert_Defaults(t *testing.T) {
	alerts, a := IssueAlert(nil, AlertInput{Message: "Stay indoors"}, "Gov Mike", Stamp{ID: "a2", At: time.Now()})

	require.Len(t, alerts, 1)
	assert.Equal(t, DefaultAlertTitle, a.Title)
	assert.Equal(t, entity.SeverityHigh, a.Severity)
	assert.Equal(t, "Gov Mike", a.Issuer)
}

func TestSetPresence(t *testing.T) {
	users := []entity.User{{ID: "2", Role: entity.RoleVolunteer}}

	next, err := SetPresence(users, "2", true)
	require.NoError(t, err)
	assert.True(t, next[0].IsOnline)
	assert.False(t, users[0].IsOnline)

	_, err = SetPresence(users, "9", true)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
