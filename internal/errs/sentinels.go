// Package errs contains sentinel errors shared across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g. duplicate email).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates locally detected validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDeliveryFailed indicates an outbound email could not be sent.
	ErrDeliveryFailed = errors.New("delivery failed")

	// ErrRateLimited indicates the caller exceeded an attempt budget.
	ErrRateLimited = errors.New("rate limited")
)
