package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ridepool/trips-api/internal/domain"
)

// createTripRequestRequest is the request body for POST /trips/requests.
type createTripRequestRequest struct {
	PassengerID       string    `json:"passenger_id"`
	Destination       string    `json:"destination"`
	EarliestStartDate time.Time `json:"earliest_start_date"`
	LatestStartDate   time.Time `json:"latest_start_date"`
}

// updateTripRequestRequest is the request body for PUT /trips/requests/{request_id}.
type updateTripRequestRequest struct {
	TripID string `json:"trip_id"`
	Status string `json:"status"`
}

// CreateTripRequest handles POST /trips/requests.
// Returns 200 with {"request_id": ...} on success, 400 on validation failure.
func (s *Server) CreateTripRequest(w http.ResponseWriter, r *http.Request) {
	var body createTripRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	id, err := s.requests.Create(r.Context(), body.PassengerID, body.Destination,
		body.EarliestStartDate, body.LatestStartDate)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidationError(w, err)
			return
		}
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"request_id": id})
}

// ListTripRequests handles GET /trips/requests.
// Supports ?destination= as a case-insensitive substring filter.
func (s *Server) ListTripRequests(w http.ResponseWriter, r *http.Request) {
	filter := domain.TripRequestFilter{
		Destination: r.URL.Query().Get("destination"),
	}

	reqs, err := s.requests.List(r.Context(), filter)
	if err != nil {
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, reqs)
}

// GetTripRequest handles GET /trips/requests/{request_id}.
func (s *Server) GetTripRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.requests.GetByID(r.Context(), chi.URLParam(r, "request_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip request not found")
			return
		}
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// UpdateTripRequest handles PUT /trips/requests/{request_id}.
// Accepts any known status; transitions are not policed, so a request can
// move between pending and accepted in either direction.
func (s *Server) UpdateTripRequest(w http.ResponseWriter, r *http.Request) {
	var body updateTripRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	ok, err := s.requests.Update(r.Context(), chi.URLParam(r, "request_id"),
		body.TripID, body.Status)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidationError(w, err)
			return
		}
		writeServerError(w)
		return
	}
	if !ok {
		writeNotFound(w, "trip request not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "trip request updated successfully"})
}
