package services

import "errors"

var (
	// ErrNotFound covers unknown slugs, venues and response ids,
	// including undo attempts on records that are already gone.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredential is returned on a failed password check without
	// revealing whether the venue or account exists.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrValidation covers well-formed requests referencing an inactive
	// source or a missing venue.
	ErrValidation = errors.New("validation failed")

	// ErrNetworkFailure marks transport-level faults when the response
	// log is consumed over the wire.
	ErrNetworkFailure = errors.New("network failure")
)
