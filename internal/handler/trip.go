package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ridepool/trips-api/internal/domain"
)

// createTripRequest is the request body for POST /trips.
// Fields the server assigns (trip_id, passengers) are excluded.
type createTripRequest struct {
	DriverID         string    `json:"driver_id"`
	DriverCar        string    `json:"driver_car"`
	Capacity         int       `json:"capacity"`
	Destination      string    `json:"destination"`
	PickupLocation   string    `json:"pickup_location"`
	StartDatetime    time.Time `json:"start_datetime"`
	ReturnDatetime   time.Time `json:"return_datetime"`
	CostPerPassenger float64   `json:"cost_per_passenger"`
}

// joinTripRequest is the request body for POST /trips/{trip_id}/join.
type joinTripRequest struct {
	PassengerID string `json:"passenger_id"`
}

// CreateTrip handles POST /trips.
// Returns 200 with {"trip_id": ...} on success, 400 on validation failure.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	trip := domain.Trip{
		DriverID:         body.DriverID,
		DriverCar:        body.DriverCar,
		Capacity:         body.Capacity,
		Destination:      body.Destination,
		PickupLocation:   body.PickupLocation,
		StartDatetime:    body.StartDatetime,
		ReturnDatetime:   body.ReturnDatetime,
		CostPerPassenger: body.CostPerPassenger,
	}

	id, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidationError(w, err)
			return
		}
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"trip_id": id})
}

// ListTrips handles GET /trips.
// Supports ?pickup=, ?destination= (case-insensitive substring) and ?date=
// (RFC 3339 timestamp or YYYY-MM-DD; matches trips starting that day).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	filter := domain.TripFilter{
		Pickup:      r.URL.Query().Get("pickup"),
		Destination: r.URL.Query().Get("destination"),
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := parseDateParam(raw)
		if err != nil {
			writeBadRequest(w, "invalid date parameter: "+raw)
			return
		}
		filter.Date = &d
	}

	trips, err := s.trips.List(r.Context(), filter)
	if err != nil {
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{trip_id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByID(r.Context(), chi.URLParam(r, "trip_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// JoinTrip handles POST /trips/{trip_id}/join.
// The service's boolean collapses not-found, full, and duplicate into one
// outcome, so all three map to 404 here.
func (s *Server) JoinTrip(w http.ResponseWriter, r *http.Request) {
	var body joinTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if body.PassengerID == "" {
		writeBadRequest(w, "passenger_id is required")
		return
	}

	ok, err := s.trips.Join(r.Context(), chi.URLParam(r, "trip_id"), body.PassengerID)
	if err != nil {
		writeServerError(w)
		return
	}
	if !ok {
		writeNotFound(w, "trip not found or could not be updated")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "passenger added successfully"})
}

// DeleteTrip handles DELETE /trips/{trip_id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ok, err := s.trips.Delete(r.Context(), chi.URLParam(r, "trip_id"))
	if err != nil {
		writeServerError(w)
		return
	}
	if !ok {
		writeNotFound(w, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "trip deleted successfully"})
}

// parseDateParam accepts either a full RFC 3339 timestamp or a bare
// YYYY-MM-DD date. Either way the result selects a calendar day.
func parseDateParam(raw string) (time.Time, error) {
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return d, nil
	}
	return time.Parse("2006-01-02", raw)
}
