// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/mock"
	"github.com/MKhiriev/aifa-auth/internal/password"
	"github.com/MKhiriev/aifa-auth/internal/ratelimit"
	"github.com/MKhiriev/aifa-auth/internal/store"
	"github.com/MKhiriev/aifa-auth/models"
)

const (
	testEmail    = "john.connor@skynet.com"
	testPassword = "Str0ng&Secret!"
)

// testAuthService bundles the service with its mocks and a recording
// sleep, so tests can assert both behaviour and the timing floor without
// really sleeping.
type testAuthService struct {
	svc      *authService
	limiter  *mock.MockLimiter
	users    *mock.MockUserRepository
	sessions *mock.MockSessionRepository
	slept    *[]time.Duration
}

func newTestAuthService(t *testing.T, env config.Environment) testAuthService {
	t.Helper()
	ctrl := gomock.NewController(t)

	limiter := mock.NewMockLimiter(ctrl)
	users := mock.NewMockUserRepository(ctrl)
	sessions := mock.NewMockSessionRepository(ctrl)

	slept := &[]time.Duration{}
	svc := &authService{
		storages:   &store.Storages{UserRepository: users, SessionRepository: sessions},
		limiter:    limiter,
		verifier:   password.NewVerifier(bcrypt.MinCost),
		policy:     config.ResolveFailurePolicy(env),
		sessionTTL: config.DefaultSessionTTL,
		logger:     logger.Nop(),
		sleep:      func(d time.Duration) { *slept = append(*slept, d) },
	}

	return testAuthService{svc: svc, limiter: limiter, users: users, sessions: sessions, slept: slept}
}

func allowed() models.RateLimitResult {
	return models.RateLimitResult{Success: true, Limit: 5, Remaining: 4, Reset: time.Now().Add(15 * time.Minute)}
}

func testUser(t *testing.T, cost int) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), cost)
	require.NoError(t, err)

	return models.User{UserID: 42, Email: testEmail, Name: "John Connor", PasswordHash: string(hash), Role: "user"}
}

// ─────────────────────────────────────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ts := newTestAuthService(t, config.Development)
	user := testUser(t, bcrypt.MinCost)

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	ts.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).Return(user, nil)
	ts.sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Session) (models.Session, error) {
			s.SessionID = "b5d0e7a0-4b3e-4f1a-9a8a-2f1c0d9e8b7a"
			s.CreatedAt = time.Now()
			return s, nil
		})
	ts.users.EXPECT().UpdateLastLogin(gomock.Any(), user.UserID).Return(nil)

	before := time.Now()
	session, err := ts.svc.Login(context.Background(), models.LoginRequest{
		Email:     testEmail,
		Password:  testPassword,
		IPAddress: "203.0.113.7",
		UserAgent: "curl/8.5.0",
	})

	require.NoError(t, err)
	assert.Equal(t, user.UserID, session.UserID)
	assert.Len(t, session.Token, 43) // 32 bytes, base64url without padding
	assert.Equal(t, "203.0.113.7", session.IPAddress)
	assert.Equal(t, "curl/8.5.0", session.UserAgent)
	assert.WithinDuration(t, before.Add(config.DefaultSessionTTL), session.ExpiresAt, 2*time.Second)
	assert.Empty(t, *ts.slept, "a successful login must not be delayed")
}

func TestAuthService_Login_ValidationSkipsLimiter(t *testing.T) {
	// No expectations are registered: any call on the limiter or the
	// repositories fails the test. Malformed input must consume no
	// attempt budget.
	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr error
	}{
		{name: "EmptyEmail", req: models.LoginRequest{Password: testPassword}, wantErr: ErrMissingCredentials},
		{name: "EmptyPassword", req: models.LoginRequest{Email: testEmail}, wantErr: ErrMissingCredentials},
		{name: "EmptyBoth", req: models.LoginRequest{}, wantErr: ErrMissingCredentials},
		{name: "NoAtSign", req: models.LoginRequest{Email: "john.connor", Password: testPassword}, wantErr: ErrInvalidEmailFormat},
		{name: "NoTLD", req: models.LoginRequest{Email: "john@skynet", Password: testPassword}, wantErr: ErrInvalidEmailFormat},
		{name: "Whitespace", req: models.LoginRequest{Email: "john connor@skynet.com", Password: testPassword}, wantErr: ErrInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestAuthService(t, config.Development)

			_, err := ts.svc.Login(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_Login_RateLimited(t *testing.T) {
	ts := newTestAuthService(t, config.Development)
	reset := time.Now().Add(9 * time.Minute)

	// Denied before any credential work: no lookup, no bcrypt.
	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).
		Return(models.RateLimitResult{Success: false, Limit: 5, Remaining: 0, Reset: reset}, nil)

	_, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	var rateErr *RateLimitExceededError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 5, rateErr.Limit)
	assert.Zero(t, rateErr.Remaining)
	assert.Equal(t, reset, rateErr.Reset)
}

func TestAuthService_Login_LimiterError(t *testing.T) {
	ts := newTestAuthService(t, config.Production)

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).
		Return(models.RateLimitResult{}, ratelimit.ErrLimiterUnavailable)

	_, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ratelimit.ErrLimiterUnavailable)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ts := newTestAuthService(t, config.Development)

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	ts.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).
		Return(models.User{}, store.ErrNoUserWasFound)

	_, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, *ts.slept, 1, "unknown user must be held to the timing floor")
	assert.LessOrEqual(t, (*ts.slept)[0], loginTimingFloor)
	assert.Positive(t, (*ts.slept)[0])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ts := newTestAuthService(t, config.Development)
	user := testUser(t, bcrypt.MinCost)

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	ts.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).Return(user, nil)

	_, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: "not-the-password"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, *ts.slept, 1, "wrong password must be held to the timing floor")
	assert.LessOrEqual(t, (*ts.slept)[0], loginTimingFloor)
}

func TestAuthService_Login_FailurePathsShareSentinel(t *testing.T) {
	// "No such account" and "wrong password" must be indistinguishable:
	// one sentinel, one message, one timing floor.
	user := testUser(t, bcrypt.MinCost)

	unknown := newTestAuthService(t, config.Development)
	unknown.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	unknown.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).
		Return(models.User{}, store.ErrNoUserWasFound)
	_, errUnknown := unknown.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	mismatch := newTestAuthService(t, config.Development)
	mismatch.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	mismatch.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).Return(user, nil)
	_, errMismatch := mismatch.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: "not-the-password"})

	require.Error(t, errUnknown)
	require.Error(t, errMismatch)
	assert.Equal(t, errUnknown.Error(), errMismatch.Error())
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errMismatch, ErrInvalidCredentials)
	assert.Len(t, *unknown.slept, 1)
	assert.Len(t, *mismatch.slept, 1)
}

func TestAuthService_Login_TimingFloorElapses(t *testing.T) {
	if testing.Short() {
		t.Skip("real sleep")
	}

	// With the real time.Sleep, a credential failure must not return
	// before the floor regardless of how quickly the lookup fails.
	ts := newTestAuthService(t, config.Development)
	ts.svc.sleep = time.Sleep

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	ts.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).
		Return(models.User{}, store.ErrNoUserWasFound)

	start := time.Now()
	_, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.GreaterOrEqual(t, time.Since(start), loginTimingFloor)
}

func TestAuthService_Login_UserLookupError(t *testing.T) {
	ts := newTestAuthService(t, config.Production)

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	ts.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).
		Return(models.User{}, store.ErrExecutingStatement)

	_, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials, "an outage must not masquerade as bad credentials")
	assert.Empty(t, *ts.slept)
}

func TestAuthService_Login_SessionCreationError(t *testing.T) {
	ts := newTestAuthService(t, config.Production)
	user := testUser(t, bcrypt.MinCost)

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	ts.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).Return(user, nil)
	ts.sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		Return(models.Session{}, store.ErrExecutingStatement)

	_, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestAuthService_Login_LastLoginFailureIsSwallowed(t *testing.T) {
	ts := newTestAuthService(t, config.Development)
	user := testUser(t, bcrypt.MinCost)

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	ts.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).Return(user, nil)
	ts.sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.Session) (models.Session, error) { return s, nil })
	ts.users.EXPECT().UpdateLastLogin(gomock.Any(), user.UserID).Return(errors.New("connection reset"))

	session, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	require.NoError(t, err, "a failed last-login stamp must not fail the login")
	assert.NotEmpty(t, session.Token)
}

func TestAuthService_Login_LazyRehash(t *testing.T) {
	ts := newTestAuthService(t, config.Development)

	// The stored hash is below the verifier's current cost, so a
	// successful login upgrades it in place.
	ts.svc.verifier = password.NewVerifier(bcrypt.MinCost + 1)
	user := testUser(t, bcrypt.MinCost)

	ts.limiter.EXPECT().Check(gomock.Any(), testEmail).Return(allowed(), nil)
	ts.users.EXPECT().FindUserByEmail(gomock.Any(), testEmail).Return(user, nil)
	ts.sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.Session) (models.Session, error) { return s, nil })
	ts.users.EXPECT().UpdateLastLogin(gomock.Any(), user.UserID).Return(nil)
	ts.users.EXPECT().UpdatePasswordHash(gomock.Any(), user.UserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string) error {
			assert.NotEqual(t, user.PasswordHash, hash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(testPassword)))
			return nil
		})

	_, err := ts.svc.Login(context.Background(), models.LoginRequest{Email: testEmail, Password: testPassword})

	require.NoError(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────────────────────────────────────

func TestAuthService_Logout(t *testing.T) {
	t.Run("DeletesSession", func(t *testing.T) {
		ts := newTestAuthService(t, config.Development)
		ts.sessions.EXPECT().DeleteSession(gomock.Any(), "some-token").Return(nil)

		ts.svc.Logout(context.Background(), "some-token")
	})

	t.Run("EmptyTokenIsNoop", func(t *testing.T) {
		ts := newTestAuthService(t, config.Development)

		ts.svc.Logout(context.Background(), "")
	})

	t.Run("StoreErrorIsSwallowed", func(t *testing.T) {
		ts := newTestAuthService(t, config.Production)
		ts.sessions.EXPECT().DeleteSession(gomock.Any(), "some-token").
			Return(store.ErrExecutingStatement)

		ts.svc.Logout(context.Background(), "some-token")
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// IsAuthenticated
// ─────────────────────────────────────────────────────────────────────────────

func TestAuthService_IsAuthenticated(t *testing.T) {
	valid := models.Session{SessionID: "id", UserID: 42, Token: "some-token", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("EmptyToken", func(t *testing.T) {
		ts := newTestAuthService(t, config.Development)

		assert.False(t, ts.svc.IsAuthenticated(context.Background(), ""))
	})

	t.Run("ValidSession", func(t *testing.T) {
		ts := newTestAuthService(t, config.Production)
		ts.sessions.EXPECT().FindSessionByToken(gomock.Any(), "some-token").Return(valid, nil)

		assert.True(t, ts.svc.IsAuthenticated(context.Background(), "some-token"))
	})

	t.Run("UnknownToken", func(t *testing.T) {
		ts := newTestAuthService(t, config.Development)
		ts.sessions.EXPECT().FindSessionByToken(gomock.Any(), "some-token").
			Return(models.Session{}, store.ErrNoSessionWasFound)

		assert.False(t, ts.svc.IsAuthenticated(context.Background(), "some-token"))
	})

	t.Run("ExpiredSession", func(t *testing.T) {
		ts := newTestAuthService(t, config.Development)
		ts.sessions.EXPECT().FindSessionByToken(gomock.Any(), "some-token").
			Return(models.Session{}, store.ErrSessionExpired)

		assert.False(t, ts.svc.IsAuthenticated(context.Background(), "some-token"))
	})

	t.Run("StoreErrorFailsOpenInDevelopment", func(t *testing.T) {
		ts := newTestAuthService(t, config.Development)
		ts.sessions.EXPECT().FindSessionByToken(gomock.Any(), "some-token").
			Return(models.Session{}, store.ErrExecutingStatement)

		assert.True(t, ts.svc.IsAuthenticated(context.Background(), "some-token"))
	})

	t.Run("StoreErrorFailsClosedInProduction", func(t *testing.T) {
		ts := newTestAuthService(t, config.Production)
		ts.sessions.EXPECT().FindSessionByToken(gomock.Any(), "some-token").
			Return(models.Session{}, store.ErrExecutingStatement)

		assert.False(t, ts.svc.IsAuthenticated(context.Background(), "some-token"))
	})

	t.Run("UnconfiguredStore", func(t *testing.T) {
		dev := newTestAuthService(t, config.Development)
		dev.svc.storages = &store.Storages{}
		assert.True(t, dev.svc.IsAuthenticated(context.Background(), "some-token"))

		prod := newTestAuthService(t, config.Production)
		prod.svc.storages = &store.Storages{}
		assert.False(t, prod.svc.IsAuthenticated(context.Background(), "some-token"))
	})
}
