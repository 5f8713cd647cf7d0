package entity

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Values are the persisted display names.
type Role string

const (
	RoleCitizen    Role = "Citizen"
	RoleVolunteer  Role = "Volunteer"
	RoleNGO        Role = "NGO Coordinator"
	RoleGovernment Role = "Government Official"
)

var Roles = []Role{RoleCitizen, RoleVolunteer, RoleNGO, RoleGovernment}

// Slug is the dashboard path segment for the role.
func (r Role) Slug() string {
	switch r {
	case RoleCitizen:
		return "citizen"
	case RoleVolunteer:
		return "volunteer"
	case RoleNGO:
		return "ngo-coordinator"
	case RoleGovernment:
		return "government-official"
	}
	return ""
}

func (r Role) Valid() bool {
	return r.Slug() != ""
}

// ParseRole accepts either the display name or the dashboard slug, case-insensitively.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) || strings.EqualFold(s, r.Slug()) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsOnline bool   `json:"isOnline,omitempty"`
}
