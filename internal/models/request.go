package models

import (
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/bloodtype"
)

type RequestStatus string

const (
	StatusPending RequestStatus = "pending"
	StatusAccept  RequestStatus = "accept"
	StatusDecline RequestStatus = "decline"
)

// BloodRequest asks a donor to give blood. FromID/ToID are identities;
// the names are kept for display only.
type BloodRequest struct {
	ID          string         `json:"id"`
	FromID      string         `json:"fromId"`
	FromName    string         `json:"from"`
	ToID        string         `json:"toId"`
	ToName      string         `json:"to"`
	BloodType   bloodtype.Type `json:"bloodType"`
	Location    string         `json:"location"`
	Message     string         `json:"message"`
	CreatedAt   time.Time      `json:"date"`
	Status      RequestStatus  `json:"status"`
	RespondedAt *time.Time     `json:"respondedAt,omitempty"`
}

// Resolved reports whether the donor has already answered.
func (r BloodRequest) Resolved() bool {
	return r.Status != StatusPending
}
