// Package ratelimit implements the per-identifier sliding-window login
// rate limiter. Counting is delegated to a [CounterStore] — an atomic
// increment-and-expire primitive — so concurrent attempts for the same
// identifier serialize at the counter without locking here.
//
// Behaviour when the counter store is missing or failing is governed by a
// [config.FailurePolicy]: development fails open with a logged warning,
// production fails closed.
package ratelimit

//go:generate mockgen -source=interfaces.go -destination=../mock/ratelimit_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/aifa-auth/models"
)

// Limiter tracks login attempts per identifier inside a fixed window.
type Limiter interface {
	// Check records one attempt for identifier and reports whether it may
	// proceed. The first call in a window creates a fresh record; calls
	// past the configured maximum are denied until the window elapses.
	Check(ctx context.Context, identifier string) (models.RateLimitResult, error)

	// Reset clears the record for identifier immediately. Administrative
	// override used for testing and manual unblocking.
	Reset(ctx context.Context, identifier string) error
}

// CounterStore is the atomic counting primitive behind the limiter.
type CounterStore interface {
	// Incr atomically increments the counter for key, starting a window
	// of the given length on first increment, and returns the new count
	// together with the time left until the window elapses.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)

	// Reset deletes the counter for key.
	Reset(ctx context.Context, key string) error
}
