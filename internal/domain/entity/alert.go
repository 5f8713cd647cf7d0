package entity

import "time"

type EmergencyAlert struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Issuer    string    `json:"issuer"` // display name of the issuing official
	CreatedAt time.Time `json:"createdAt"`
}
