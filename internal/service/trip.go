// Package service contains the business logic for the trips service.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/ridepool/trips-api/internal/domain"
	"github.com/ridepool/trips-api/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip, returning its assigned id.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (string, error) {
	if err := trip.Validate(); err != nil {
		return "", err
	}
	id, err := s.repo.Create(ctx, trip)
	if err != nil {
		return "", fmt.Errorf("service.TripService.Create: %w", err)
	}
	return id, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, tripID string) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns trips matching the filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Join adds a passenger to a trip. The repo performs the capacity and
// duplicate checks atomically, so the result is correct under concurrent
// joins. False means not found, full, or already joined; the three causes
// are deliberately not distinguished.
func (s *TripService) Join(ctx context.Context, tripID, passengerID string) (bool, error) {
	ok, err := s.repo.AddPassenger(ctx, tripID, passengerID)
	if err != nil {
		return false, fmt.Errorf("service.TripService.Join: %w", err)
	}
	return ok, nil
}

// Delete removes a trip by ID. Returns true iff the trip existed.
func (s *TripService) Delete(ctx context.Context, tripID string) (bool, error) {
	ok, err := s.repo.Delete(ctx, tripID)
	if err != nil {
		return false, fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return ok, nil
}
