package domain

import "errors"

// Gateway error taxonomy

var (
	// ErrServiceUnavailable indicates a provider credential is missing and the feature is disabled
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrNotFound indicates the queried entity does not exist upstream
	ErrNotFound = errors.New("not found")

	// ErrUpstream indicates a transport failure or a non-2xx provider response
	ErrUpstream = errors.New("upstream error")

	// ErrInternal indicates an unexpected failure during classification or dispatch
	ErrInternal = errors.New("internal error")

	// ErrSessionNotFound indicates a turn was appended to a session that was never created
	ErrSessionNotFound = errors.New("session not found")
)
