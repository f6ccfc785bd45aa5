// Package repo contains all database access logic for the trips service.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ridepool/trips-api/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create re-validates the trip, assigns a fresh opaque trip_id when the
	// caller has not set one, persists the record, and returns the id.
	// The primary key on trip_id backs the uniqueness guarantee.
	Create(ctx context.Context, trip domain.Trip) (string, error)

	// GetByID retrieves a single trip by its trip_id.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, tripID string) (domain.Trip, error)

	// List returns trips matching the filter, ordered by start_datetime.
	// All filter fields AND together; an empty filter returns everything.
	// No match yields an empty slice, never an error.
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)

	// AddPassenger appends passengerID to the trip's roster in one atomic
	// conditional update. It returns true only when, at the instant of the
	// update, the trip exists, the passenger is not already on it, and the
	// roster is below capacity. All three failure causes collapse to false
	// with no mutation; callers needing the cause must re-fetch the trip.
	AddPassenger(ctx context.Context, tripID, passengerID string) (bool, error)

	// Delete removes a trip by ID. Returns true iff a record existed and was
	// removed, so deleting twice yields true then false.
	Delete(ctx context.Context, tripID string) (bool, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `trip_id, driver_id, driver_car, capacity, destination,
		pickup_location, start_datetime, return_datetime, cost_per_passenger, passengers`

// Create inserts a new trip row and returns its identifier.
// The id is generated application-side so the contract is uniform regardless
// of the backing store; the primary key makes a collision a visible error.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (string, error) {
	if err := trip.Validate(); err != nil {
		return "", fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	if trip.TripID == "" {
		trip.TripID = uuid.NewString()
	}
	if trip.Passengers == nil {
		trip.Passengers = []string{}
	}

	const q = `
		INSERT INTO trips (` + tripColumns + `)
		VALUES (@trip_id, @driver_id, @driver_car, @capacity, @destination,
		        @pickup_location, @start_datetime, @return_datetime,
		        @cost_per_passenger, @passengers)`

	args := pgx.NamedArgs{
		"trip_id":            trip.TripID,
		"driver_id":          trip.DriverID,
		"driver_car":         trip.DriverCar,
		"capacity":           trip.Capacity,
		"destination":        trip.Destination,
		"pickup_location":    trip.PickupLocation,
		"start_datetime":     trip.StartDatetime,
		"return_datetime":    trip.ReturnDatetime,
		"cost_per_passenger": trip.CostPerPassenger,
		"passengers":         trip.Passengers,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return "", fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return trip.TripID, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, tripID string) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns trips matching the filter, soonest departure first.
// Pickup and destination match as case-insensitive substrings; the date
// filter bounds start_datetime to that date's calendar day in the date's
// own time zone, [00:00:00, 23:59:59.999999].
func (r *pgTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE 1=1`
	args := pgx.NamedArgs{}

	if filter.Pickup != "" {
		q += ` AND pickup_location ILIKE @pickup`
		args["pickup"] = "%" + escapeLike(filter.Pickup) + "%"
	}
	if filter.Destination != "" {
		q += ` AND destination ILIKE @destination`
		args["destination"] = "%" + escapeLike(filter.Destination) + "%"
	}
	if filter.Date != nil {
		d := *filter.Date
		dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		dayEnd := dayStart.Add(24*time.Hour - time.Microsecond)
		q += ` AND start_datetime >= @day_start AND start_datetime <= @day_end`
		args["day_start"] = dayStart
		args["day_end"] = dayEnd
	}
	q += ` ORDER BY start_datetime`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

// AddPassenger performs the capacity- and duplicate-safe join as a single
// conditional UPDATE. Postgres evaluates the WHERE predicates and the
// array_append under the row lock, so two concurrent joins racing for one
// remaining seat resolve to exactly one affected row.
func (r *pgTripRepo) AddPassenger(ctx context.Context, tripID, passengerID string) (bool, error) {
	const q = `
		UPDATE trips
		SET passengers = array_append(passengers, @passenger_id)
		WHERE trip_id = @trip_id
		  AND NOT (passengers @> ARRAY[@passenger_id]::text[])
		  AND cardinality(passengers) < capacity`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"trip_id":      tripID,
		"passenger_id": passengerID,
	})
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.AddPassenger: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, tripID string) (bool, error) {
	const q = `DELETE FROM trips WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip

	err := s.Scan(&t.TripID, &t.DriverID, &t.DriverCar, &t.Capacity,
		&t.Destination, &t.PickupLocation, &t.StartDatetime, &t.ReturnDatetime,
		&t.CostPerPassenger, &t.Passengers)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if t.Passengers == nil {
		t.Passengers = []string{}
	}
	return t, nil
}

// escapeLike backslash-escapes the LIKE metacharacters so filter text always
// matches as a literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
