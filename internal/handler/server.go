// Package handler implements the HTTP layer for the trips service.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, trip.go, triprequest.go) but share the same Server struct so
// they can access its dependencies. Handlers only decode requests, call a
// service, and encode responses; every business rule lives below this layer.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ridepool/trips-api/internal/domain"
	"github.com/ridepool/trips-api/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (string, error)
	GetByID(ctx context.Context, tripID string) (domain.Trip, error)
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	Join(ctx context.Context, tripID, passengerID string) (bool, error)
	Delete(ctx context.Context, tripID string) (bool, error)
}

// TripRequestServicer defines the business operations the trip request
// handlers depend on.
type TripRequestServicer interface {
	Create(ctx context.Context, passengerID, destination string, earliest, latest time.Time) (string, error)
	GetByID(ctx context.Context, requestID string) (domain.TripRequest, error)
	List(ctx context.Context, filter domain.TripRequestFilter) ([]domain.TripRequest, error)
	Update(ctx context.Context, requestID, tripID, rawStatus string) (bool, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips    TripServicer
	requests TripRequestServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, requests TripRequestServicer) *Server {
	return &Server{trips: trips, requests: requests}
}

// Routes registers every endpoint on the given chi router.
// The static /trips/requests subtree is registered alongside the
// /trips/{trip_id} wildcard; chi matches static segments first.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", s.CreateTripRequest)
			r.Get("/", s.ListTripRequests)
			r.Get("/{request_id}", s.GetTripRequest)
			r.Put("/{request_id}", s.UpdateTripRequest)
		})

		r.Get("/{trip_id}", s.GetTrip)
		r.Post("/{trip_id}/join", s.JoinTrip)
		r.Delete("/{trip_id}", s.DeleteTrip)
	})
}

// GetOpenAPI serves the embedded OpenAPI document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
