package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because an account with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoSessionWasFound is returned when a session lookup by token
	// matches no row.
	ErrNoSessionWasFound = errors.New("no session was found")

	// ErrSessionExpired is returned when a session lookup matches a row
	// whose expiry cutoff has passed. The row may still exist until the
	// sweeper removes it, but it must never be handed out as valid.
	ErrSessionExpired = errors.New("session is expired")

	// ErrStoreUnconfigured is returned when an operation is attempted with
	// no database connection configured. In development this is an expected
	// state with developer guidance; in production it is a hard failure.
	ErrStoreUnconfigured = errors.New("database is not configured")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
