package workflow

import (
	"sort"

	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

type ReportInput struct {
	Type        string
	Description string
	Location    string
}

// ReportDisaster prepends a freshly reported disaster. The severity is decided
// by the caller (rating adapter or its fallback) and never re-evaluated.
func ReportDisaster(current []entity.Disaster, in ReportInput, reporterID string, severity entity.Severity, stamp Stamp) ([]entity.Disaster, entity.Disaster) {
	d := entity.Disaster{
		ID:          stamp.ID,
		Type:        in.Type,
		Description: in.Description,
		Location:    in.Location,
		Severity:    severity,
		Status:      entity.DisasterReported,
		ReportedBy:  reporterID,
		CreatedAt:   stamp.At,
	}
	return prependCopy(current, d), d
}

// SetDisasterStatus records verification or response progress. Status is not
// checked against the disaster's tasks.
func SetDisasterStatus(current []entity.Disaster, id string, status entity.DisasterStatus) ([]entity.Disaster, error) {
	if !status.Valid() {
		return current, errors.BadRequest("Unknown disaster status "+string(status), nil)
	}
	next, found := update(current, func(d entity.Disaster) bool { return d.ID == id }, func(d *entity.Disaster) {
		d.Status = status
	})
	if !found {
		return current, errors.NotFound("Disaster", nil)
	}
	return next, nil
}

func FindDisaster(disasters []entity.Disaster, id string) (entity.Disaster, bool) {
	for _, d := range disasters {
		if d.ID == id {
			return d, true
		}
	}
	return entity.Disaster{}, false
}

// ReportsBy returns the disasters a user reported, in collection order.
func ReportsBy(disasters []entity.Disaster, userID string) []entity.Disaster {
	return filter(disasters, func(d entity.Disaster) bool { return d.ReportedBy == userID })
}

// DisasterCoverage is the government metrics row for one disaster.
type DisasterCoverage struct {
	entity.Disaster
	TaskCount int `json:"taskCount"`
	Coverage  int `json:"coverage"` // percent, capped at 100
}

// Coverage estimates response coverage from the number of tasks raised
// against each disaster. Critical disasters need more tasks per point.
func Coverage(disasters []entity.Disaster, tasks []entity.Task) []DisasterCoverage {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.DisasterID]++
	}

	out := make([]DisasterCoverage, 0, len(disasters))
	for _, d := range disasters {
		n := counts[d.ID]
		per := 50
		if d.Severity == entity.SeverityCritical {
			per = 35
		}
		cov := n * per
		if cov > 100 {
			cov = 100
		}
		out = append(out, DisasterCoverage{Disaster: d, TaskCount: n, Coverage: cov})
	}
	return out
}

// DisastersNewestFirst orders by creation time, latest first, keeping
// collection order among equal timestamps.
func DisastersNewestFirst(disasters []entity.Disaster) []entity.Disaster {
	out := append([]entity.Disaster{}, disasters...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
