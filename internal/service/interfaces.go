// Package service implements the authentication control flow: the login
// orchestrator, logout, and the read-only session validity check.
package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/aifa-auth/models"
)

// AuthService sequences credential authentication end to end.
type AuthService interface {
	// Login runs the full login state machine: input validation,
	// rate-limit check, credential lookup, password verification, and
	// session creation. On success it returns the created session, whose
	// token the transport layer issues as the auth cookie.
	//
	// Failures are reported through the package's error taxonomy:
	// [ErrMissingCredentials], [ErrInvalidEmailFormat],
	// [*RateLimitExceededError], [ErrInvalidCredentials],
	// [*ConfigurationError], or a wrapped unexpected error. Both
	// credential failures ("no such user", "wrong password") share one
	// sentinel and one timing profile.
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)

	// Logout deletes the session for token, best-effort: storage
	// failures are logged and swallowed because the user's intent is to
	// be logged out regardless of backend state. The caller must clear
	// the cookie unconditionally.
	Logout(ctx context.Context, token string)

	// IsAuthenticated reports whether token maps to a valid, unexpired
	// session. An empty token is never authenticated. When the store
	// cannot be consulted the failure policy decides: fail-open treats
	// cookie presence as authenticated (development convenience),
	// fail-closed treats an unverifiable session as no session.
	IsAuthenticated(ctx context.Context, token string) bool
}
