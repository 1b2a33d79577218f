package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidEnvironment indicates an unrecognised APP_ENVIRONMENT value.
	ErrInvalidEnvironment = errors.New("invalid environment configuration")
	// ErrInvalidStorageConfigs indicates missing storage settings in a mode
	// that requires them (empty DSN in production).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidRateLimitConfigs indicates missing rate limiter settings in
	// a mode that requires them (empty endpoint or token in production).
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
)
