// Package domain contains the core data types for the trips service.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Trip represents a ride posted by a driver: a route, a schedule, a fixed
// passenger capacity, and the roster of passengers who have joined so far.
// Passengers is append-only and ordered by join time.
type Trip struct {
	TripID           string    `json:"trip_id"`
	DriverID         string    `json:"driver_id"`
	DriverCar        string    `json:"driver_car"`
	Capacity         int       `json:"capacity"`
	Destination      string    `json:"destination"`
	PickupLocation   string    `json:"pickup_location"`
	StartDatetime    time.Time `json:"start_datetime"`
	ReturnDatetime   time.Time `json:"return_datetime"`
	CostPerPassenger float64   `json:"cost_per_passenger"`
	Passengers       []string  `json:"passengers"`
}

// Validate checks every business rule on the trip. It is run when a trip is
// first constructed from request input and again by the repo just before
// persistence, so an invalid in-memory mutation can never reach the database.
// All failures wrap ErrValidation.
func (t Trip) Validate() error {
	if t.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}
	if t.CostPerPassenger < 0 {
		return fmt.Errorf("%w: cost_per_passenger cannot be negative", ErrValidation)
	}
	if !t.ReturnDatetime.After(t.StartDatetime) {
		return fmt.Errorf("%w: return_datetime must be after start_datetime", ErrValidation)
	}
	if len(t.Passengers) > t.Capacity {
		return fmt.Errorf("%w: number of passengers (%d) exceeds capacity (%d)",
			ErrValidation, len(t.Passengers), t.Capacity)
	}
	if strings.TrimSpace(t.DriverID) == "" || strings.TrimSpace(t.DriverCar) == "" {
		return fmt.Errorf("%w: driver_id and driver_car are required", ErrValidation)
	}
	if strings.TrimSpace(t.Destination) == "" || strings.TrimSpace(t.PickupLocation) == "" {
		return fmt.Errorf("%w: destination and pickup_location are required", ErrValidation)
	}
	return nil
}

// AddPassenger appends a passenger to the in-memory roster.
// Returns ErrDuplicatePassenger if the passenger is already on the trip
// (exact, case-sensitive match) and (false, nil) without mutating when the
// trip is full.
//
// This check-then-append is only safe with a single writer; under concurrent
// access the repo's conditional update is the authoritative path.
func (t *Trip) AddPassenger(passengerID string) (bool, error) {
	for _, p := range t.Passengers {
		if p == passengerID {
			return false, fmt.Errorf("%w: %s", ErrDuplicatePassenger, passengerID)
		}
	}
	if len(t.Passengers) >= t.Capacity {
		return false, nil
	}
	t.Passengers = append(t.Passengers, passengerID)
	return true, nil
}

// TripFilter narrows a trip listing. Zero values mean "no constraint".
// Pickup and Destination match as case-insensitive substrings; Date matches
// trips whose start_datetime falls on that date's calendar day, in the
// date's own time zone.
type TripFilter struct {
	Pickup      string
	Destination string
	Date        *time.Time
}
