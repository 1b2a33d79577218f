// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"time"

	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/models"
)

// windowLimiter is the concrete implementation of [Limiter]. A nil store
// means the backend was never configured; what happens then is the failure
// policy's call, not this type's.
type windowLimiter struct {
	store  CounterStore
	max    int
	window time.Duration
	policy config.FailurePolicy
	logger *logger.Logger
}

// NewLimiter constructs a [Limiter] over the given counter store. store may
// be nil (unconfigured backend); max and window fall back to the configured
// defaults when non-positive.
func NewLimiter(store CounterStore, cfg config.RateLimit, policy config.FailurePolicy, logger *logger.Logger) Limiter {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxAttempts
	}
	window := cfg.Window
	if window <= 0 {
		window = config.DefaultWindow
	}

	logger.Debug().Int("max_attempts", maxAttempts).Dur("window", window).Msg("creating rate limiter")
	return &windowLimiter{
		store:  store,
		max:    maxAttempts,
		window: window,
		policy: policy,
		logger: logger,
	}
}

// Check implements [Limiter].
//
// With no counter store configured the outcome is the policy's: fail-open
// returns a full budget with a warning so local development is never
// blocked, fail-closed returns [ErrLimiterUnavailable] — a limiter that
// silently allows in production is no limiter at all. Errors from a
// configured store follow the same split and are always logged.
func (l *windowLimiter) Check(ctx context.Context, identifier string) (models.RateLimitResult, error) {
	log := logger.FromContext(ctx)

	if l.store == nil {
		if l.policy.OnUnconfigured == config.FailClosed {
			log.Error().Msg("rate limiter backend is not configured")
			return models.RateLimitResult{}, ErrLimiterUnavailable
		}

		log.Warn().Msg("rate limiter backend is not configured, allowing all attempts")
		return l.openResult(), nil
	}

	count, ttl, err := l.store.Incr(ctx, identifier, l.window)
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("rate limit check failed")

		if l.policy.OnError == config.FailClosed {
			return models.RateLimitResult{}, ErrLimiterUnavailable
		}
		return l.openResult(), nil
	}

	reset := time.Now().Add(ttl)
	if count > int64(l.max) {
		log.Warn().Str("identifier", identifier).Int64("count", count).Msg("rate limit exceeded")
		return models.RateLimitResult{
			Success:   false,
			Limit:     l.max,
			Remaining: 0,
			Reset:     reset,
		}, nil
	}

	return models.RateLimitResult{
		Success:   true,
		Limit:     l.max,
		Remaining: l.max - int(count),
		Reset:     reset,
	}, nil
}

// Reset implements [Limiter]. With no backend configured there is nothing
// to clear.
func (l *windowLimiter) Reset(ctx context.Context, identifier string) error {
	if l.store == nil {
		return nil
	}
	return l.store.Reset(ctx, identifier)
}

// openResult is the fail-open answer: full remaining budget, window
// starting now.
func (l *windowLimiter) openResult() models.RateLimitResult {
	return models.RateLimitResult{
		Success:   true,
		Limit:     l.max,
		Remaining: l.max,
		Reset:     time.Now().Add(l.window),
	}
}
