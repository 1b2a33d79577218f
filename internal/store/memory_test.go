package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/aifa-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_Contract(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, models.User{Email: "user@example.com", PasswordHash: "$2a$12$hash"})
	require.NoError(t, err)
	assert.NotZero(t, created.UserID)

	_, err = repo.CreateUser(ctx, models.User{Email: "user@example.com"})
	require.ErrorIs(t, err, ErrEmailAlreadyExists)

	found, err := repo.FindUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, found.UserID)

	_, err = repo.FindUserByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, ErrNoUserWasFound)

	require.NoError(t, repo.UpdateLastLogin(ctx, created.UserID))
	found, err = repo.FindUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)

	require.ErrorIs(t, repo.UpdateLastLogin(ctx, 404), ErrNoUserWasFound)

	require.NoError(t, repo.UpdatePasswordHash(ctx, created.UserID, "$2a$12$newhash"))
	found, err = repo.FindUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$12$newhash", found.PasswordHash)
}

// TestMemoryUserRepository_EmailCaseSensitive pins down that lookups are
// case-sensitive, matching how emails are stored.
func TestMemoryUserRepository_EmailCaseSensitive(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, models.User{Email: "User@Example.com"})
	require.NoError(t, err)

	_, err = repo.FindUserByEmail(ctx, "user@example.com")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestMemorySessionRepository_Contract(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	created, err := repo.CreateSession(ctx, models.Session{
		UserID:    7,
		Token:     "live-token",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.SessionID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindSessionByToken(ctx, "live-token")
	require.NoError(t, err)
	assert.Equal(t, created.SessionID, found.SessionID)

	_, err = repo.FindSessionByToken(ctx, "unknown")
	require.ErrorIs(t, err, ErrNoSessionWasFound)

	require.NoError(t, repo.DeleteSession(ctx, "live-token"))
	_, err = repo.FindSessionByToken(ctx, "live-token")
	require.ErrorIs(t, err, ErrNoSessionWasFound)

	// deleting again is still fine
	require.NoError(t, repo.DeleteSession(ctx, "live-token"))
}

func TestMemorySessionRepository_ExpiredNeverReturned(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	_, err := repo.CreateSession(ctx, models.Session{
		UserID:    7,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Second),
	})
	require.NoError(t, err)

	_, err = repo.FindSessionByToken(ctx, "stale-token")
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestMemorySessionRepository_BulkDeletes(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	mk := func(userID int64, token string, ttl time.Duration) {
		_, err := repo.CreateSession(ctx, models.Session{
			UserID:    userID,
			Token:     token,
			ExpiresAt: time.Now().Add(ttl),
		})
		require.NoError(t, err)
	}

	mk(1, "a", time.Hour)
	mk(1, "b", time.Hour)
	mk(2, "c", time.Hour)
	mk(2, "d", -time.Minute)

	removed, err := repo.DeleteSessionsForUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = repo.DeleteExpiredSessions(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed, "only the expired session should be swept")

	_, err = repo.FindSessionByToken(ctx, "c")
	assert.NoError(t, err)
}
