// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/password"
	"github.com/MKhiriev/aifa-auth/internal/ratelimit"
	"github.com/MKhiriev/aifa-auth/internal/store"
	"github.com/MKhiriev/aifa-auth/models"
)

// loginTimingFloor is the minimum wall-clock duration of a credential
// failure, measured from orchestrator entry. Both "unknown user" and
// "wrong password" are held to this floor so response latency cannot tell
// them apart. The sleep covers only the remainder, so a slow bcrypt compare
// does not stack on top of it.
const loginTimingFloor = 500 * time.Millisecond

// emailPattern accepts local@domain.tld-shaped input. It is a syntactic
// gate, not RFC validation; its job is to reject obvious garbage before any
// budget is spent.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// authService is the concrete implementation of [AuthService]. It owns the
// ordered login state machine and the failure policy for degraded
// backends. All state is read-only after construction; the service is safe
// for concurrent use.
type authService struct {
	storages   *store.Storages
	limiter    ratelimit.Limiter
	verifier   *password.Verifier
	policy     config.FailurePolicy
	sessionTTL time.Duration
	logger     *logger.Logger

	// sleep is swapped in tests that only care about ordering, never in
	// production: the timing floor must really elapse there.
	sleep func(time.Duration)
}

// NewAuthService constructs an [AuthService] wired to the given
// repositories, rate limiter, and credential verifier.
func NewAuthService(storages *store.Storages, limiter ratelimit.Limiter, verifier *password.Verifier, cfg config.App, logger *logger.Logger) AuthService {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = config.DefaultSessionTTL
	}

	return &authService{
		storages:   storages,
		limiter:    limiter,
		verifier:   verifier,
		policy:     config.ResolveFailurePolicy(cfg.Environment),
		sessionTTL: sessionTTL,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Login implements [AuthService]. Steps run in a fixed order, each an
// early exit:
//
//  1. presence check — free, no limiter call;
//  2. email syntax check — free, no limiter call;
//  3. rate-limit check keyed by the submitted email — a blocked attempt
//     performs no lookup and no hashing, so expensive work is skipped and
//     timing cannot distinguish "rate limited" from "wrong password";
//  4. user lookup;
//  5. unknown user — timing floor, then [ErrInvalidCredentials];
//  6. password verification — mismatch takes the identical floor and the
//     identical sentinel;
//  7. session creation with audit fields and a fresh random token;
//  8. best-effort last-login stamp (and lazy rehash when the stored hash
//     is below current policy) — failures are logged, never surfaced.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	// 1-2: validation, free of side effects
	if req.Email == "" || req.Password == "" {
		return models.Session{}, ErrMissingCredentials
	}
	if !emailPattern.MatchString(req.Email) {
		return models.Session{}, ErrInvalidEmailFormat
	}

	// 3: rate limit before any credential work
	limit, err := a.limiter.Check(ctx, req.Email)
	if err != nil {
		log.Err(err).Msg("rate limiter unavailable")
		return models.Session{}, &ConfigurationError{Cause: err}
	}
	if !limit.Success {
		return models.Session{}, &RateLimitExceededError{
			Limit:     limit.Limit,
			Remaining: limit.Remaining,
			Reset:     limit.Reset,
		}
	}

	// 4: user lookup
	user, err := a.findUser(ctx, req.Email)
	switch {
	case err == nil:
		// found, continue
	case errors.Is(err, store.ErrNoUserWasFound):
		// 5: unknown user, indistinguishable from wrong password
		a.equalizeTiming(start)
		return models.Session{}, ErrInvalidCredentials
	default:
		log.Err(err).Msg("user lookup failed")
		return models.Session{}, &ConfigurationError{Cause: err}
	}

	// 6: password verification
	if !a.verifier.Verify(req.Password, user.PasswordHash) {
		a.equalizeTiming(start)
		return models.Session{}, ErrInvalidCredentials
	}

	// 7: session creation
	token, err := generateSessionToken()
	if err != nil {
		return models.Session{}, fmt.Errorf("login failed: %w", err)
	}

	session, err := a.storages.SessionRepository.CreateSession(ctx, models.Session{
		UserID:    user.UserID,
		Token:     token,
		ExpiresAt: time.Now().Add(a.sessionTTL),
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	})
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("session creation failed")
		return models.Session{}, &ConfigurationError{Cause: err}
	}

	// 8: post-login side effects, best-effort
	a.afterLogin(ctx, user, req.Password)

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	return session, nil
}

// Logout implements [AuthService]. Session deletion is best-effort: a
// failing store must not keep the user logged in, so errors are logged and
// swallowed.
func (a *authService) Logout(ctx context.Context, token string) {
	log := logger.FromContext(ctx)

	if token == "" || a.storages.SessionRepository == nil {
		return
	}

	if err := a.storages.SessionRepository.DeleteSession(ctx, token); err != nil {
		log.Err(err).Msg("session deletion failed during logout")
		return
	}

	log.Debug().Msg("session deleted")
}

// IsAuthenticated implements [AuthService].
func (a *authService) IsAuthenticated(ctx context.Context, token string) bool {
	log := logger.FromContext(ctx)

	if token == "" {
		return false
	}

	if a.storages.SessionRepository == nil {
		return a.failSessionCheck(log, store.ErrStoreUnconfigured, a.policy.OnUnconfigured)
	}

	_, err := a.storages.SessionRepository.FindSessionByToken(ctx, token)
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNoSessionWasFound), errors.Is(err, store.ErrSessionExpired):
		return false
	default:
		return a.failSessionCheck(log, err, a.policy.OnError)
	}
}

// failSessionCheck applies the failure policy to an unverifiable session:
// fail-open trusts cookie presence (development), fail-closed treats it as
// no session.
func (a *authService) failSessionCheck(log *logger.Logger, err error, action config.FailureAction) bool {
	if action == config.FailClosed {
		log.Err(err).Msg("session check failed, treating as unauthenticated")
		return false
	}

	log.Warn().Err(err).Msg("session store unavailable, trusting cookie presence")
	return true
}

// findUser resolves the account for email, reporting an unconfigured
// repository the same way the repositories themselves do.
func (a *authService) findUser(ctx context.Context, email string) (models.User, error) {
	if a.storages.UserRepository == nil {
		return models.User{}, store.ErrStoreUnconfigured
	}
	return a.storages.UserRepository.FindUserByEmail(ctx, email)
}

// afterLogin runs the best-effort post-login side effects: the last-login
// stamp and, when the stored hash predates current cost policy, a lazy
// rehash. Neither failure may fail the login.
func (a *authService) afterLogin(ctx context.Context, user models.User, plainPassword string) {
	log := logger.FromContext(ctx)

	if err := a.storages.UserRepository.UpdateLastLogin(ctx, user.UserID); err != nil {
		log.Warn().Err(err).Int64("user_id", user.UserID).Msg("last-login update failed")
	}

	if !a.verifier.NeedsRehash(user.PasswordHash) {
		return
	}

	rehash, err := a.verifier.Hash(plainPassword)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", user.UserID).Msg("lazy rehash failed")
		return
	}
	if err = a.storages.UserRepository.UpdatePasswordHash(ctx, user.UserID, rehash); err != nil {
		log.Warn().Err(err).Int64("user_id", user.UserID).Msg("storing rehashed password failed")
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("password hash upgraded to current cost")
}

// equalizeTiming holds a credential failure to the timing floor, measured
// from orchestrator entry. Sleeping only the remainder keeps total elapsed
// time flat whether or not bcrypt ran.
func (a *authService) equalizeTiming(start time.Time) {
	if elapsed := time.Since(start); elapsed < loginTimingFloor {
		a.sleep(loginTimingFloor - elapsed)
	}
}
