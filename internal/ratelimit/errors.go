package ratelimit

import "errors"

var (
	// ErrLimiterUnavailable is returned when the counter store cannot be
	// consulted and the failure policy is fail-closed. Callers turn it
	// into a generic "service unavailable" message; the detail stays in
	// server logs.
	ErrLimiterUnavailable = errors.New("rate limiter unavailable")

	// ErrCounterStoreRequest is returned by the REST counter store when
	// the remote endpoint rejects or fails a command.
	ErrCounterStoreRequest = errors.New("counter store request failed")
)
