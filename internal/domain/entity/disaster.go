package entity

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// ParseSeverity matches one of the four ratings case-insensitively,
// ignoring surrounding whitespace and trailing punctuation.
func ParseSeverity(s string) (Severity, error) {
	s = strings.Trim(strings.TrimSpace(s), ".!\"'")
	for _, sev := range Severities {
		if strings.EqualFold(s, string(sev)) {
			return sev, nil
		}
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

type DisasterStatus string

const (
	DisasterReported   DisasterStatus = "Reported"
	DisasterVerified   DisasterStatus = "Verified"
	DisasterInProgress DisasterStatus = "In Progress"
	DisasterResolved   DisasterStatus = "Resolved"
)

func (s DisasterStatus) Valid() bool {
	switch s {
	case DisasterReported, DisasterVerified, DisasterInProgress, DisasterResolved:
		return true
	}
	return false
}

type Disaster struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Severity    Severity       `json:"severity"`
	Status      DisasterStatus `json:"status"`
	ReportedBy  string         `json:"reportedBy"` // User ID
	CreatedAt   time.Time      `json:"createdAt"`
}
