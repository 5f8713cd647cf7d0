package repository

import (
	"encoding/json"
	"time"

	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

// Seed holds the fixture collections written by Initialize.
type Seed struct {
	Users        []entity.User
	Disasters    []entity.Disaster
	Tasks        []entity.Task
	Requests     []entity.ResourceRequest
	HelpRequests []entity.HelpRequest
	Alerts       []entity.EmergencyAlert
	Chats        []entity.ChatMessage
	Meta         Meta
}

func (s *Seed) payloads() (map[CollectionKey][]byte, error) {
	values := map[CollectionKey]interface{}{
		UsersKey:        nonNil(s.Users),
		DisastersKey:    nonNil(s.Disasters),
		TasksKey:        nonNil(s.Tasks),
		RequestsKey:     nonNil(s.Requests),
		HelpRequestsKey: nonNil(s.HelpRequests),
		AlertsKey:       nonNil(s.Alerts),
		ChatsKey:        nonNil(s.Chats),
		MetaKey:         s.Meta,
	}

	out := make(map[CollectionKey][]byte, len(values))
	for key, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Internal("Failed to encode seed "+string(key), err)
		}
		out[key] = b
	}
	return out, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// DefaultSeed returns the demo fixtures with timestamps relative to now.
func DefaultSeed(now time.Time) *Seed {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }

	return &Seed{
		Users: []entity.User{
			{ID: "1", Name: "John Doe", Email: "citizen@resqnet.com", Role: entity.RoleCitizen},
			{ID: "2", Name: "Volunteer Alex", Email: "alex@vol.com", Role: entity.RoleVolunteer, IsOnline: true},
			{ID: "5", Name: "Volunteer Maya", Email: "maya@vol.com", Role: entity.RoleVolunteer},
			{ID: "6", Name: "Volunteer Liam", Email: "liam@vol.com", Role: entity.RoleVolunteer, IsOnline: true},
			{ID: "3", Name: "NGO Sarah", Email: "sarah@ngo.org", Role: entity.RoleNGO},
			{ID: "7", Name: "Red Cross Team", Email: "rc@ngo.org", Role: entity.RoleNGO},
			{ID: "4", Name: "Gov Mike", Email: "mike@gov.in", Role: entity.RoleGovernment},
		},
		Disasters: []entity.Disaster{
			{
				ID:          "d1",
				Type:        "Flash Flood",
				Description: "Heavy rainfall causing waterlogging in the downtown area. Basement flooding reported in multiple blocks.",
				Location:    "Sector 7, Downtown",
				Severity:    entity.SeverityHigh,
				Status:      entity.DisasterReported,
				ReportedBy:  "1",
				CreatedAt:   ago(24 * time.Hour),
			},
			{
				ID:          "d2",
				Type:        "Building Collapse",
				Description: "Old residential building partially collapsed after tremor. Possible casualties trapped under debris.",
				Location:    "Old Town Square",
				Severity:    entity.SeverityCritical,
				Status:      entity.DisasterInProgress,
				ReportedBy:  "1",
				CreatedAt:   ago(time.Hour),
			},
			{
				ID:          "d3",
				Type:        "Wildfire",
				Description: "Dry brush fire spreading towards the residential fringe of the West Forest.",
				Location:    "West Forest Border",
				Severity:    entity.SeverityHigh,
				Status:      entity.DisasterVerified,
				ReportedBy:  "1",
				CreatedAt:   ago(2 * time.Hour),
			},
			{
				ID:          "d4",
				Type:        "Earthquake",
				Description: "Magnitude 5.2 earthquake hit the northern suburbs. Infrastructure assessment required.",
				Location:    "North Hill Area",
				Severity:    entity.SeverityCritical,
				Status:      entity.DisasterResolved,
				ReportedBy:  "4",
				CreatedAt:   ago(7 * 24 * time.Hour),
			},
		},
		Tasks: []entity.Task{
			{ID: "t1", DisasterID: "d2", NGOID: "3", VolunteerID: "2", Description: "Search and rescue operation in the north wing of the collapsed building.", Status: entity.TaskAccepted, CreatedAt: now},
			{ID: "t2", DisasterID: "d1", NGOID: "3", VolunteerID: "2", Description: "Evacuation assistance for elderly residents in Block B.", Status: entity.TaskCompleted, CreatedAt: ago(5000 * time.Second)},
			{ID: "t3", DisasterID: "d3", NGOID: "7", Description: "Creating a firebreak near the main water station.", Status: entity.TaskPending, CreatedAt: now},
			{ID: "t4", DisasterID: "d1", NGOID: "7", VolunteerID: "2", Description: "Food distribution at the relief camp in Sector 7.", Status: entity.TaskCompleted, CreatedAt: ago(48 * time.Hour)},
			{ID: "t5", DisasterID: "d4", NGOID: "3", VolunteerID: "2", Description: "Preliminary structural safety assessment of community center.", Status: entity.TaskCompleted, CreatedAt: ago(6 * 24 * time.Hour)},
		},
		Requests: []entity.ResourceRequest{
			{ID: "r1", NGOID: "3", Type: "Heavy Machinery", Quantity: "2 Excavators", Status: entity.RequestPending, Description: "Required for debris removal at the Old Town building collapse site.", CreatedAt: now},
			{ID: "r2", NGOID: "7", Type: "Medical Supplies", Quantity: "500 First Aid Kits", Status: entity.RequestApproved, Description: "Emergency stockpiling for flood-affected families.", CreatedAt: ago(time.Hour)},
		},
		HelpRequests: []entity.HelpRequest{
			{ID: "h1", UserID: "1", Type: entity.HelpMedical, Description: "Inhaled smoke during wildfire. Need oxygen support.", Location: "Apt 402, West Forest fringe", Status: entity.HelpPending, CreatedAt: now},
		},
		Alerts: []entity.EmergencyAlert{
			{ID: "a1", Title: "Severe Weather Warning", Message: "A heavy storm is expected in the next 3 hours. Stay indoors.", Severity: entity.SeverityHigh, Issuer: "Gov Mike", CreatedAt: now},
		},
		Chats: []entity.ChatMessage{
			{ID: "c1", SenderID: "4", ReceiverID: "3", Text: "Sarah, we have authorized the extra excavators for the downtown site. Ensure field teams have safety clearance.", Timestamp: ago(time.Hour)},
			{ID: "c2", SenderID: "3", ReceiverID: "4", Text: "Understood, Mike. Teams are mobilizing. We will update the status in the portal by 18:00.", Timestamp: ago(30 * time.Minute)},
			{ID: "c3", SenderID: "2", ReceiverID: "1", Text: "Hello John, I am on my way to Sector 7. Can you confirm the street number?", Timestamp: ago(30 * time.Minute)},
		},
		Meta: Meta{SchemaVersion: SchemaVersion, InitializedAt: now},
	}
}
