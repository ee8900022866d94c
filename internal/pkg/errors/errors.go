package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a caller touches a resource they do not own.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is returned when a write collides with an existing record,
	// e.g. an overlapping consultation slot.
	ErrConflict = errors.New("conflict")
	// ErrProviderUnavailable is returned when the upstream astrology API
	// cannot serve a request after retries.
	ErrProviderUnavailable = errors.New("astrology provider unavailable")
)
