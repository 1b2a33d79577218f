// Package store implements persistence for users and sessions. The
// PostgreSQL repositories are the production backing; the in-memory
// repositories satisfy the same contracts for tests and for development
// without a database.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/aifa-auth/models"
)

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with
	// server-assigned fields populated. Returns [ErrEmailAlreadyExists]
	// on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks up an account by its exact email.
	// Returns [ErrNoUserWasFound] when no row matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// UpdateLastLogin stamps the user's last successful login time.
	UpdateLastLogin(ctx context.Context, userID int64) error

	// UpdatePasswordHash replaces the stored credential hash. Used by the
	// lazy rehash performed after a successful login against an outdated
	// hash.
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
}

// SessionRepository is the data-access contract for browser sessions.
type SessionRepository interface {
	// CreateSession persists a new session row and returns it with
	// server-assigned fields populated.
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)

	// FindSessionByToken resolves a bearer token to its session.
	// Returns [ErrNoSessionWasFound] for an unknown token and
	// [ErrSessionExpired] for a token whose session is past its cutoff —
	// an expired session is never returned as valid.
	FindSessionByToken(ctx context.Context, token string) (models.Session, error)

	// DeleteSession removes the session for the given token. Deleting an
	// unknown token is not an error; the caller's intent is already met.
	DeleteSession(ctx context.Context, token string) error

	// DeleteSessionsForUser removes every session owned by userID and
	// returns the number removed. Used for "log out everywhere".
	DeleteSessionsForUser(ctx context.Context, userID int64) (int64, error)

	// DeleteExpiredSessions removes every session whose expiry is at or
	// before the given cutoff and returns the number removed. Called by
	// the periodic sweeper.
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}
