package domain

import "errors"

// Sentinel errors shared by services and translated to HTTP status codes
// in the API error handler. Handlers and services wrap them with %w.
var (
	// ErrInvalidCredentials covers both "unknown email" and "wrong
	// password" so login failures are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned on a role or ownership mismatch.
	ErrForbidden = errors.New("access forbidden")

	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("invalid input")

	ErrNotFound   = errors.New("not found")
	ErrUserExists = errors.New("user already exists")

	// ErrTransient marks a timeout or transient store failure. It is the
	// only class callers may retry; the core itself never retries.
	ErrTransient = errors.New("transient failure")
)
