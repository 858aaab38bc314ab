package model

import "errors"

var (
	// ErrValidation marks a request missing a required field; never retried.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable marks the durable store as unreachable.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound is returned for absent records and documents.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a missing or unverifiable identity token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrExternalService marks a failure reported by an upstream provider.
	ErrExternalService = errors.New("external service error")
)
