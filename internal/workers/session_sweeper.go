// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/store"
)

// sessionSweeper periodically deletes sessions that are past their absolute
// cutoff. Expiry is already enforced on every read, so the sweeper is pure
// hygiene: it keeps the sessions table from accumulating dead rows.
type sessionSweeper struct {
	sessions store.SessionRepository
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionSweeper creates a sweeper that runs every cfg.SweepInterval.
// If the interval is zero or negative it defaults to one hour.
func NewSessionSweeper(sessions store.SessionRepository, cfg config.Workers, logger *logger.Logger) Worker {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}

	return &sessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run implements [Worker]. It sweeps once immediately, then on every tick,
// until Stop is called.
func (s *sessionSweeper) Run() {
	s.Stop()

	s.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(s.interval)
		defer t.Stop()

		s.sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Stop implements [Worker]. It cancels the sweep goroutine and blocks until
// it has exited. Safe to call when the sweeper is not running.
func (s *sessionSweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *sessionSweeper) sweep(ctx context.Context) {
	deleted, err := s.sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		s.logger.Warn().Err(err).Msg("expired session sweep failed")
		return
	}

	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("expired sessions swept")
	}
}
