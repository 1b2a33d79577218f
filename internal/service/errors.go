package service

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by [AuthService.Login]. Callers should use
// [errors.Is]/[errors.As] to match against these values.
var (
	// ErrMissingCredentials is returned when email or password is empty.
	// Validation failures are free: they never touch the rate limiter.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidEmailFormat is returned when the email is not shaped like
	// local@domain.tld. Like all validation failures it consumes no
	// attempt budget.
	ErrInvalidEmailFormat = errors.New("invalid email format")

	// ErrInvalidCredentials is the single sentinel for both "unknown
	// user" and "wrong password". The two cases must stay
	// indistinguishable in message and in timing.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RateLimitExceededError is returned when the limiter denies an attempt.
// It carries the window data so the transport layer can report the
// remaining budget.
type RateLimitExceededError struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("too many login attempts: %d remaining until %s", e.Remaining, e.Reset.Format(time.RFC3339))
}

// ConfigurationError wraps a backing-service failure (unconfigured or
// unreachable store). The transport layer surfaces the cause verbosely in
// development to help fix the setup, and a generic message in production to
// avoid leaking infrastructure detail.
type ConfigurationError struct {
	Cause error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("backing service unavailable: %v", e.Cause)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
