package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when entity fields violate a business rule
// (e.g. non-positive capacity, return before start, missing required field).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrDuplicatePassenger is returned by the in-memory Trip.AddPassenger when
// the passenger is already on the trip. The atomic repo path never returns
// this error; it collapses duplicates into a false result instead.
var ErrDuplicatePassenger = errors.New("passenger already in trip")
