// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Application defaults applied to zero-valued fields after merging all
// configuration sources.
const (
	DefaultEnvironment    = Development
	DefaultSessionTTL     = 7 * 24 * time.Hour
	DefaultMaxAttempts    = 5
	DefaultWindow         = 15 * time.Minute
	DefaultHTTPAddress    = "localhost:8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultAdapterBaseURL = "http://localhost:8080"
)

// applyDefaults fills zero-valued fields with application defaults.
// Defaults are deliberately development-leaning; production deployments must
// set every required value explicitly and validate catches omissions.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Environment == "" {
		cfg.App.Environment = DefaultEnvironment
	}
	if cfg.App.SessionTTL <= 0 {
		cfg.App.SessionTTL = DefaultSessionTTL
	}
	if cfg.RateLimit.MaxAttempts <= 0 {
		cfg.RateLimit.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = DefaultWindow
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = DefaultAdapterBaseURL
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// In development every backend is optional: the store and the rate limiter
// degrade per their fail-open policies. In production an unconfigured
// backend is a deployment mistake and must stop the process at startup
// rather than surface as request-time failures.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Environment != Development && cfg.App.Environment != Production {
		return ErrInvalidEnvironment
	}

	if !cfg.App.Environment.IsProduction() {
		return nil
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.RateLimit.Endpoint == "" || cfg.RateLimit.Token == "" {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}
