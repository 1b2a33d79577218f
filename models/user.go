package models

import "time"

// User represents an account entity used for authentication.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique login identifier, stored case-sensitively.
	// Lookups compare it exactly as submitted.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext, and is never serialized.
	PasswordHash string `json:"-"`

	// Role is a coarse authorization tag ("user", "admin").
	Role string `json:"role"`

	// EmailVerified reports whether the address has been confirmed.
	EmailVerified bool `json:"email_verified"`

	// LastLoginAt records the most recent successful login.
	// Nil until the first login; updated best-effort, so it may lag.
	LastLoginAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification of the record.
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
