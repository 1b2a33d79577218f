// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the auth server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// from the wire protocol. The shipped implementation
// ([NewHTTPServerAdapter]) talks HTTP/REST and holds the session cookie in
// a jar, so callers never see or handle the raw token.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrRateLimited] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/aifa-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the auth
// server. Implementations are responsible for serialisation, session-cookie
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// Login submits credentials to the server. On success the session
	// cookie is retained for subsequent requests. On rejection the
	// returned error carries the category ([ErrUnauthorized],
	// [ErrRateLimited], ...) and the result carries the server's
	// user-visible message when one was sent.
	Login(ctx context.Context, email, password string) (models.LoginResult, error)

	// Logout tells the server to destroy the current session and drops
	// the local cookie. Dropping the cookie happens even when the request
	// fails; the returned error is informational.
	Logout(ctx context.Context) error

	// SessionCheck asks the server whether the held cookie still maps to
	// a valid session.
	SessionCheck(ctx context.Context) (models.SessionCheckResult, error)
}
