package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridepool/trips-api/internal/domain"
	"github.com/ridepool/trips-api/internal/handler"
)

// mockTripRequestService is a hand-written test double for handler.TripRequestServicer.
type mockTripRequestService struct {
	create  func(ctx context.Context, passengerID, destination string, earliest, latest time.Time) (string, error)
	getByID func(ctx context.Context, requestID string) (domain.TripRequest, error)
	list    func(ctx context.Context, filter domain.TripRequestFilter) ([]domain.TripRequest, error)
	update  func(ctx context.Context, requestID, tripID, rawStatus string) (bool, error)
}

func (m *mockTripRequestService) Create(ctx context.Context, passengerID, destination string, earliest, latest time.Time) (string, error) {
	return m.create(ctx, passengerID, destination, earliest, latest)
}
func (m *mockTripRequestService) GetByID(ctx context.Context, requestID string) (domain.TripRequest, error) {
	return m.getByID(ctx, requestID)
}
func (m *mockTripRequestService) List(ctx context.Context, filter domain.TripRequestFilter) ([]domain.TripRequest, error) {
	return m.list(ctx, filter)
}
func (m *mockTripRequestService) Update(ctx context.Context, requestID, tripID, rawStatus string) (bool, error) {
	return m.update(ctx, requestID, tripID, rawStatus)
}

var _ handler.TripRequestServicer = (*mockTripRequestService)(nil)

func TestCreateTripRequest(t *testing.T) {
	h := newRouter(nil, &mockTripRequestService{
		create: func(_ context.Context, passengerID, destination string, earliest, latest time.Time) (string, error) {
			assert.Equal(t, "pass123", passengerID)
			assert.Equal(t, "Disneyland", destination)
			assert.True(t, latest.After(earliest))
			return "req1", nil
		},
	})

	body := `{
		"passenger_id": "pass123",
		"destination": "Disneyland",
		"earliest_start_date": "2026-07-01T00:00:00Z",
		"latest_start_date": "2026-07-02T00:00:00Z"
	}`

	rec := doRequest(t, h, http.MethodPost, "/trips/requests", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req1", resp["request_id"])
}

func TestCreateTripRequest_ValidationError(t *testing.T) {
	h := newRouter(nil, &mockTripRequestService{
		create: func(_ context.Context, _, _ string, _, _ time.Time) (string, error) {
			return "", domain.ErrValidation
		},
	})

	rec := doRequest(t, h, http.MethodPost, "/trips/requests", `{"passenger_id": ""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTripRequests(t *testing.T) {
	var gotFilter domain.TripRequestFilter
	h := newRouter(nil, &mockTripRequestService{
		list: func(_ context.Context, f domain.TripRequestFilter) ([]domain.TripRequest, error) {
			gotFilter = f
			return []domain.TripRequest{{RequestID: "req1", Status: domain.StatusPending}}, nil
		},
	})

	rec := doRequest(t, h, http.MethodGet, "/trips/requests?destination=disney", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "disney", gotFilter.Destination)

	var resp []domain.TripRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "req1", resp[0].RequestID)
}

func TestGetTripRequest(t *testing.T) {
	tripID := "trip99"
	h := newRouter(nil, &mockTripRequestService{
		getByID: func(_ context.Context, requestID string) (domain.TripRequest, error) {
			return domain.TripRequest{
				RequestID: requestID,
				Status:    domain.StatusAccepted,
				TripID:    &tripID,
			}, nil
		},
	})

	rec := doRequest(t, h, http.MethodGet, "/trips/requests/req1", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.TripRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req1", resp.RequestID)
	assert.Equal(t, domain.StatusAccepted, resp.Status)
	require.NotNil(t, resp.TripID)
	assert.Equal(t, "trip99", *resp.TripID)
}

func TestGetTripRequest_NotFound(t *testing.T) {
	h := newRouter(nil, &mockTripRequestService{
		getByID: func(_ context.Context, _ string) (domain.TripRequest, error) {
			return domain.TripRequest{}, domain.ErrNotFound
		},
	})

	rec := doRequest(t, h, http.MethodGet, "/trips/requests/ghost", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTripRequest(t *testing.T) {
	h := newRouter(nil, &mockTripRequestService{
		update: func(_ context.Context, requestID, tripID, rawStatus string) (bool, error) {
			assert.Equal(t, "req1", requestID)
			assert.Equal(t, "trip99", tripID)
			assert.Equal(t, "accepted", rawStatus)
			return true, nil
		},
	})

	rec := doRequest(t, h, http.MethodPut, "/trips/requests/req1", `{"trip_id": "trip99", "status": "accepted"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateTripRequest_NotFound(t *testing.T) {
	h := newRouter(nil, &mockTripRequestService{
		update: func(_ context.Context, _, _, _ string) (bool, error) { return false, nil },
	})

	rec := doRequest(t, h, http.MethodPut, "/trips/requests/ghost", `{"trip_id": "trip99", "status": "accepted"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTripRequest_UnknownStatus(t *testing.T) {
	h := newRouter(nil, &mockTripRequestService{
		update: func(_ context.Context, _, _, _ string) (bool, error) {
			return false, domain.ErrValidation
		},
	})

	rec := doRequest(t, h, http.MethodPut, "/trips/requests/req1", `{"trip_id": "trip99", "status": "rejected"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
