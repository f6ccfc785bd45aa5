package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridepool/trips-api/internal/domain"
	"github.com/ridepool/trips-api/internal/repo"
	"github.com/ridepool/trips-api/internal/service"
)

// mockTripRequestRepo is a hand-written test double for repo.TripRequestRepo.
type mockTripRequestRepo struct {
	create       func(ctx context.Context, req domain.TripRequest) (string, error)
	getByID      func(ctx context.Context, requestID string) (domain.TripRequest, error)
	list         func(ctx context.Context, filter domain.TripRequestFilter) ([]domain.TripRequest, error)
	updateStatus func(ctx context.Context, requestID, tripID string, status domain.RequestStatus) (bool, error)
}

func (m *mockTripRequestRepo) Create(ctx context.Context, req domain.TripRequest) (string, error) {
	return m.create(ctx, req)
}
func (m *mockTripRequestRepo) GetByID(ctx context.Context, requestID string) (domain.TripRequest, error) {
	return m.getByID(ctx, requestID)
}
func (m *mockTripRequestRepo) List(ctx context.Context, filter domain.TripRequestFilter) ([]domain.TripRequest, error) {
	return m.list(ctx, filter)
}
func (m *mockTripRequestRepo) UpdateStatus(ctx context.Context, requestID, tripID string, status domain.RequestStatus) (bool, error) {
	return m.updateStatus(ctx, requestID, tripID, status)
}

var _ repo.TripRequestRepo = (*mockTripRequestRepo)(nil)

var (
	earliest = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	latest   = earliest.AddDate(0, 0, 1)
)

func TestTripRequestService_Create(t *testing.T) {
	var persisted domain.TripRequest
	svc := service.NewTripRequestService(&mockTripRequestRepo{
		create: func(_ context.Context, req domain.TripRequest) (string, error) {
			persisted = req
			return "req1", nil
		},
	})

	id, err := svc.Create(context.Background(), "p1", "Disneyland", earliest, latest)

	require.NoError(t, err)
	assert.Equal(t, "req1", id)
	assert.Equal(t, domain.StatusPending, persisted.Status, "new requests start pending")
	assert.Nil(t, persisted.TripID)
	assert.False(t, persisted.CreatedAt.IsZero())
}

func TestTripRequestService_Create_InvalidDates(t *testing.T) {
	svc := service.NewTripRequestService(&mockTripRequestRepo{
		create: func(_ context.Context, _ domain.TripRequest) (string, error) {
			t.Fatal("repo must not be reached for an invalid request")
			return "", nil
		},
	})

	_, err := svc.Create(context.Background(), "p1", "Disneyland", latest, earliest)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripRequestService_Create_MissingPassenger(t *testing.T) {
	svc := service.NewTripRequestService(&mockTripRequestRepo{})

	_, err := svc.Create(context.Background(), "", "Disneyland", earliest, latest)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripRequestService_List_Empty(t *testing.T) {
	svc := service.NewTripRequestService(&mockTripRequestRepo{
		list: func(_ context.Context, _ domain.TripRequestFilter) ([]domain.TripRequest, error) {
			return nil, nil
		},
	})

	got, err := svc.List(context.Background(), domain.TripRequestFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripRequestService_Update(t *testing.T) {
	svc := service.NewTripRequestService(&mockTripRequestRepo{
		updateStatus: func(_ context.Context, requestID, tripID string, status domain.RequestStatus) (bool, error) {
			assert.Equal(t, "req1", requestID)
			assert.Equal(t, "trip99", tripID)
			assert.Equal(t, domain.StatusAccepted, status)
			return true, nil
		},
	})

	ok, err := svc.Update(context.Background(), "req1", "trip99", "accepted")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTripRequestService_Update_UnknownStatus(t *testing.T) {
	svc := service.NewTripRequestService(&mockTripRequestRepo{
		updateStatus: func(_ context.Context, _, _ string, _ domain.RequestStatus) (bool, error) {
			t.Fatal("repo must not be reached for an unknown status")
			return false, nil
		},
	})

	_, err := svc.Update(context.Background(), "req1", "trip99", "rejected")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripRequestService_Update_NotFound(t *testing.T) {
	svc := service.NewTripRequestService(&mockTripRequestRepo{
		updateStatus: func(_ context.Context, _, _ string, _ domain.RequestStatus) (bool, error) {
			return false, nil
		},
	})

	ok, err := svc.Update(context.Background(), "ghost", "trip99", "accepted")

	require.NoError(t, err)
	assert.False(t, ok)
}
