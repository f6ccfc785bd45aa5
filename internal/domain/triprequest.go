package domain

import (
	"fmt"
	"strings"
	"time"
)

// RequestStatus is the lifecycle state of a TripRequest.
// Stored as its string value.
type RequestStatus string

const (
	// StatusPending is the initial state of every trip request.
	StatusPending RequestStatus = "pending"
	// StatusAccepted means the request has been matched to a trip.
	StatusAccepted RequestStatus = "accepted"
)

// ParseRequestStatus converts a raw string into a RequestStatus.
// Returns ErrValidation for anything outside the known set.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case StatusPending, StatusAccepted:
		return RequestStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
}

// TripRequest represents a passenger's stated need for transport to a
// destination within a date window. TripID is nil until the request is
// matched to a trip; it is a weak reference, never checked against the
// trips store.
type TripRequest struct {
	RequestID         string        `json:"request_id"`
	PassengerID       string        `json:"passenger_id"`
	Destination       string        `json:"destination"`
	EarliestStartDate time.Time     `json:"earliest_start_date"`
	LatestStartDate   time.Time     `json:"latest_start_date"`
	Status            RequestStatus `json:"status"`
	TripID            *string       `json:"trip_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// NewTripRequest builds a pending request with CreatedAt/UpdatedAt stamped
// to the current time. Validation is the caller's next step.
func NewTripRequest(passengerID, destination string, earliest, latest time.Time) TripRequest {
	now := time.Now()
	return TripRequest{
		PassengerID:       passengerID,
		Destination:       destination,
		EarliestStartDate: earliest,
		LatestStartDate:   latest,
		Status:            StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Validate checks the trip request's business rules.
// All failures wrap ErrValidation.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.PassengerID) == "" {
		return fmt.Errorf("%w: passenger_id is required", ErrValidation)
	}
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if !r.LatestStartDate.After(r.EarliestStartDate) {
		return fmt.Errorf("%w: latest_start_date must be after earliest_start_date", ErrValidation)
	}
	return nil
}

// TripRequestFilter narrows a trip request listing.
// Destination matches as a case-insensitive substring; empty means all.
type TripRequestFilter struct {
	Destination string
}
