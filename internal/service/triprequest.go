package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ridepool/trips-api/internal/domain"
	"github.com/ridepool/trips-api/internal/repo"
)

// TripRequestService implements business logic for TripRequest operations.
type TripRequestService struct {
	repo repo.TripRequestRepo
}

// NewTripRequestService constructs a TripRequestService backed by the
// provided TripRequestRepo.
func NewTripRequestService(r repo.TripRequestRepo) *TripRequestService {
	return &TripRequestService{repo: r}
}

// Create builds a pending trip request, validates it, and persists it,
// returning the assigned request id.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripRequestService) Create(ctx context.Context, passengerID, destination string, earliest, latest time.Time) (string, error) {
	req := domain.NewTripRequest(passengerID, destination, earliest, latest)
	if err := req.Validate(); err != nil {
		return "", err
	}
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("service.TripRequestService.Create: %w", err)
	}
	return id, nil
}

// GetByID returns a single trip request by ID.
// Returns domain.ErrNotFound if no request with that ID exists.
func (s *TripRequestService) GetByID(ctx context.Context, requestID string) (domain.TripRequest, error) {
	result, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return domain.TripRequest{}, fmt.Errorf("service.TripRequestService.GetByID: %w", err)
	}
	return result, nil
}

// List returns trip requests matching the filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripRequestService) List(ctx context.Context, filter domain.TripRequestFilter) ([]domain.TripRequest, error) {
	reqs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.TripRequestService.List: %w", err)
	}
	if reqs == nil {
		return []domain.TripRequest{}, nil
	}
	return reqs, nil
}

// Update sets the request's status and trip reference.
// The rawStatus must parse to a known status (domain.ErrValidation
// otherwise), but transitions are not policed: the store accepts any status
// overwriting any other. Returns true iff the request existed.
func (s *TripRequestService) Update(ctx context.Context, requestID, tripID, rawStatus string) (bool, error) {
	status, err := domain.ParseRequestStatus(rawStatus)
	if err != nil {
		return false, err
	}
	ok, err := s.repo.UpdateStatus(ctx, requestID, tripID, status)
	if err != nil {
		return false, fmt.Errorf("service.TripRequestService.Update: %w", err)
	}
	return ok, nil
}
