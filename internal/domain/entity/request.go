package entity

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestRejected RequestStatus = "Rejected"
)

type ResourceRequest struct {
	ID          string        `json:"id"`
	NGOID       string        `json:"ngoId"`
	Type        string        `json:"type"`
	Quantity    string        `json:"quantity"`
	Status      RequestStatus `json:"status"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type HelpType string

const (
	HelpMedical HelpType = "Medical"
	HelpFood    HelpType = "Food"
	HelpRescue  HelpType = "Rescue"
	HelpShelter HelpType = "Shelter"
)

type HelpStatus string

const (
	HelpPending   HelpStatus = "Pending"
	HelpFulfilled HelpStatus = "Fulfilled"
	HelpRejected  HelpStatus = "Rejected"
)

type HelpRequest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Type        HelpType   `json:"type"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Status      HelpStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}
