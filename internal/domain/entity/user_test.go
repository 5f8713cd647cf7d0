package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleSlug(t *testing.T) {
	tests := []struct {
		role Role
		slug string
	}{
		{RoleCitizen, "citizen"},
		{RoleVolunteer, "volunteer"},
		{RoleNGO, "ngo-coordinator"},
		{RoleGovernment, "government-official"},
		{Role("Mayor"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.slug, tt.role.Slug())
			assert.Equal(t, tt.slug != "", tt.role.Valid())
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("ngo-coordinator")
	require.NoError(t, err)
	assert.Equal(t, RoleNGO, r)

	r, err = ParseRole(" government official ")
	require.NoError(t, err)
	assert.Equal(t, RoleGovernment, r)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{
		"Low":          SeverityLow,
		"medium":       SeverityMedium,
		" HIGH.\n":     SeverityHigh,
		"\"Critical\"": SeverityCritical,
	} {
		got, err := ParseSeverity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseSeverity("Catastrophic")
	assert.Error(t, err)
}

func TestDisasterStatusValid(t *testing.T) {
	assert.True(t, DisasterInProgress.Valid())
	assert.False(t, DisasterStatus("Closed").Valid())
}
