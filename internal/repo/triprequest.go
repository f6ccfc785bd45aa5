package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ridepool/trips-api/internal/domain"
)

// TripRequestRepo defines the persistence operations for TripRequests.
type TripRequestRepo interface {
	// Create assigns a fresh opaque request_id when the caller has not set
	// one, persists the record, and returns the id.
	Create(ctx context.Context, req domain.TripRequest) (string, error)

	// GetByID retrieves a single trip request by its request_id.
	// Returns domain.ErrNotFound if no request with that ID exists.
	GetByID(ctx context.Context, requestID string) (domain.TripRequest, error)

	// List returns trip requests matching the filter, oldest first.
	// An empty filter returns everything; no match yields an empty slice.
	List(ctx context.Context, filter domain.TripRequestFilter) ([]domain.TripRequest, error)

	// UpdateStatus atomically sets status and trip_id on the matching record
	// and refreshes updated_at. Returns true iff a record with requestID
	// existed. The store does not police the transition: any status may
	// overwrite any other.
	UpdateStatus(ctx context.Context, requestID, tripID string, status domain.RequestStatus) (bool, error)
}

// pgTripRequestRepo is the Postgres implementation of TripRequestRepo.
type pgTripRequestRepo struct {
	db db
}

// NewTripRequestRepo constructs a TripRequestRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewTripRequestRepo(db db) TripRequestRepo {
	return &pgTripRequestRepo{db: db}
}

const tripRequestColumns = `request_id, passenger_id, destination,
		earliest_start_date, latest_start_date, status, trip_id, created_at, updated_at`

// Create inserts a new trip request row and returns its identifier.
func (r *pgTripRequestRepo) Create(ctx context.Context, req domain.TripRequest) (string, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	if req.UpdatedAt.IsZero() {
		req.UpdatedAt = req.CreatedAt
	}

	const q = `
		INSERT INTO trip_requests (` + tripRequestColumns + `)
		VALUES (@request_id, @passenger_id, @destination, @earliest_start_date,
		        @latest_start_date, @status, @trip_id, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"request_id":          req.RequestID,
		"passenger_id":        req.PassengerID,
		"destination":         req.Destination,
		"earliest_start_date": req.EarliestStartDate,
		"latest_start_date":   req.LatestStartDate,
		"status":              string(req.Status),
		"trip_id":             req.TripID, // nil becomes NULL
		"created_at":          req.CreatedAt,
		"updated_at":          req.UpdatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return "", fmt.Errorf("repo.TripRequestRepo.Create: %w", err)
	}
	return req.RequestID, nil
}

// GetByID retrieves a trip request by primary key.
func (r *pgTripRequestRepo) GetByID(ctx context.Context, requestID string) (domain.TripRequest, error) {
	const q = `
		SELECT ` + tripRequestColumns + `
		FROM trip_requests
		WHERE request_id = @request_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"request_id": requestID})
	result, err := scanTripRequest(row)
	if err != nil {
		return domain.TripRequest{}, fmt.Errorf("repo.TripRequestRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns trip requests matching the filter, oldest first.
func (r *pgTripRequestRepo) List(ctx context.Context, filter domain.TripRequestFilter) ([]domain.TripRequest, error) {
	q := `
		SELECT ` + tripRequestColumns + `
		FROM trip_requests`
	args := pgx.NamedArgs{}

	if filter.Destination != "" {
		q += ` WHERE destination ILIKE @destination`
		args["destination"] = "%" + escapeLike(filter.Destination) + "%"
	}
	q += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRequestRepo.List: %w", err)
	}
	defer rows.Close()

	var reqs []domain.TripRequest
	for rows.Next() {
		tr, err := scanTripRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRequestRepo.List: scan: %w", err)
		}
		reqs = append(reqs, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRequestRepo.List: rows: %w", err)
	}

	return reqs, nil
}

// UpdateStatus stamps the new status, trip reference, and updated_at in a
// single UPDATE. RowsAffected counts matched rows, so the result is true
// whenever the record exists, even if the new values equal the old ones.
func (r *pgTripRequestRepo) UpdateStatus(ctx context.Context, requestID, tripID string, status domain.RequestStatus) (bool, error) {
	// clock_timestamp(), not now(): now() is pinned to the transaction start,
	// so an update in the same transaction that created the row would not
	// advance updated_at past created_at.
	const q = `
		UPDATE trip_requests
		SET status     = @status,
		    trip_id    = @trip_id,
		    updated_at = clock_timestamp()
		WHERE request_id = @request_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"request_id": requestID,
		"trip_id":    tripID,
		"status":     string(status),
	})
	if err != nil {
		return false, fmt.Errorf("repo.TripRequestRepo.UpdateStatus: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanTripRequest maps a single database row into a domain.TripRequest.
// It handles the nullable trip_id conversion.
func scanTripRequest(s scanner) (domain.TripRequest, error) {
	var (
		tr     domain.TripRequest
		status string
		tripID *string
	)

	err := s.Scan(&tr.RequestID, &tr.PassengerID, &tr.Destination,
		&tr.EarliestStartDate, &tr.LatestStartDate, &status, &tripID,
		&tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripRequest{}, domain.ErrNotFound
		}
		return domain.TripRequest{}, err
	}

	tr.Status = domain.RequestStatus(status)
	tr.TripID = tripID
	return tr, nil
}
