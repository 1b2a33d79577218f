package models

import "time"

// LoginRequest carries one credential submission from the login form,
// together with request metadata captured for session audit fields.
type LoginRequest struct {
	// Email is the submitted login identifier.
	Email string `json:"email"`

	// Password is the submitted plaintext password. It exists only for
	// the duration of the request and is never persisted or logged.
	Password string `json:"password"`

	// IPAddress is the remote address of the submitting client.
	// Not part of the form payload; filled in by the HTTP layer.
	IPAddress string `json:"-"`

	// UserAgent is the client user-agent string.
	// Not part of the form payload; filled in by the HTTP layer.
	UserAgent string `json:"-"`
}

// LoginResult is the response surface of the login operation.
type LoginResult struct {
	// Success reports whether a session was created.
	Success bool `json:"success"`

	// Message is the user-visible outcome text. For credential failures
	// it is deliberately identical for "unknown user" and "wrong
	// password".
	Message string `json:"message"`

	// Remaining is the number of login attempts left in the current
	// rate-limit window. Only populated on rate-limit rejections.
	Remaining *int `json:"remaining,omitempty"`
}

// SessionCheckResult is the response surface of the read-only session
// validity check used by server-rendered components.
type SessionCheckResult struct {
	// Authenticated reports whether the presented cookie maps to a
	// valid, unexpired session.
	Authenticated bool `json:"authenticated"`
}

// RateLimitResult describes the outcome of a single rate-limit check.
type RateLimitResult struct {
	// Success is true when the attempt is allowed to proceed.
	Success bool `json:"success"`

	// Limit is the configured maximum number of attempts per window.
	Limit int `json:"limit"`

	// Remaining is the attempt budget left in the current window.
	Remaining int `json:"remaining"`

	// Reset is the instant at which the current window elapses and the
	// budget is restored.
	Reset time.Time `json:"reset"`
}
