package workflow

import (
	"sort"

	"resqnet/internal/domain/entity"
)

const DefaultAlertTitle = "OFFICIAL GOVERNMENT ADVISORY"

type AlertInput struct {
	Title    string
	Message  string
	Severity entity.Severity
}

// IssueAlert appends a broadcast alert. Duplicates are not suppressed.
func IssueAlert(current []entity.EmergencyAlert, in AlertInput, issuer string, stamp Stamp) ([]entity.EmergencyAlert, entity.EmergencyAlert) {
	title := in.Title
	if title == "" {
		title = DefaultAlertTitle
	}
	severity := in.Severity
	if severity == "" {
		severity = entity.SeverityHigh
	}

	a := entity.EmergencyAlert{
		ID:        stamp.ID,
		Title:     title,
		Message:   in.Message,
		Severity:  severity,
		Issuer:    issuer,
		CreatedAt: stamp.At,
	}
	return appendCopy(current, a), a
}

func AlertsNewestFirst(alerts []entity.EmergencyAlert) []entity.EmergencyAlert {
	out := append([]entity.EmergencyAlert{}, alerts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
