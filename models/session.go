package models

import "time"

// Session represents one authenticated browser session. A user may hold
// many sessions at once (several browsers, several devices); each is
// identified by its own opaque bearer token.
type Session struct {
	// SessionID is the internal unique identifier of the session row.
	SessionID string `json:"-"`

	// UserID is the identifier of the owning user account.
	UserID int64 `json:"user_id"`

	// Token is the opaque, cryptographically random bearer token.
	// It is the value carried by the auth cookie and must never be
	// serialized back to a client in any response body.
	Token string `json:"-"`

	// ExpiresAt is the absolute cutoff after which the session is invalid.
	// A session is valid iff now < ExpiresAt; expiry is never advisory.
	ExpiresAt time.Time `json:"expires_at"`

	// IPAddress is the remote address captured at creation, for audit.
	IPAddress string `json:"-"`

	// UserAgent is the client user-agent captured at creation, for audit.
	UserAgent string `json:"-"`

	// CreatedAt is the timestamp when the session was issued.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its absolute cutoff at
// the given instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
