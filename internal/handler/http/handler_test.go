// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/ratelimit"
	"github.com/MKhiriev/aifa-auth/internal/service"
	"github.com/MKhiriev/aifa-auth/internal/store"
	"github.com/MKhiriev/aifa-auth/models"
)

// newFullStack wires the real service layer over in-memory repositories and
// an in-memory rate-limit counter, seeds one account, and serves the full
// route table. No mocks: this exercises the same path production requests
// take, minus PostgreSQL and the remote counter.
func newFullStack(t *testing.T, env config.Environment) *httptest.Server {
	t.Helper()

	storages := store.NewMemoryStorages()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = storages.UserRepository.CreateUser(context.Background(), models.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: string(hash),
		Role:         "user",
	})
	require.NoError(t, err)

	limiter := ratelimit.NewLimiter(
		ratelimit.NewMemoryCounterStore(),
		config.RateLimit{MaxAttempts: 5, Window: 15 * time.Minute},
		config.ResolveFailurePolicy(env),
		logger.Nop(),
	)

	services := service.NewServices(storages, limiter, config.App{Environment: env, BcryptCost: bcrypt.MinCost}, logger.Nop())
	handler := NewHandler(services, env, logger.Nop())

	srv := httptest.NewServer(handler.Init())
	t.Cleanup(srv.Close)
	return srv
}

func postLogin(t *testing.T, srv *httptest.Server, email, password string) *http.Response {
	t.Helper()
	body := loginBody(t, email, password)
	resp, err := srv.Client().Post(srv.URL+"/api/auth/login", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

// TestFullStack_LoginSessionLogout walks the whole account lifecycle over
// real HTTP: seeded login, session check with the issued cookie, logout,
// and the now-dead session.
func TestFullStack_LoginSessionLogout(t *testing.T) {
	if testing.Short() {
		t.Skip("full stack")
	}

	srv := newFullStack(t, config.Development)

	// login
	resp := postLogin(t, srv, "alice@example.com", "correct-password")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must issue the session cookie")
	assert.NotEmpty(t, cookie.Value)

	// session check with the cookie
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/session", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	checkResp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer checkResp.Body.Close()

	var check models.SessionCheckResult
	require.NoError(t, json.NewDecoder(checkResp.Body).Decode(&check))
	assert.True(t, check.Authenticated)

	// logout
	logoutReq, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/logout", nil)
	require.NoError(t, err)
	logoutReq.AddCookie(cookie)

	logoutResp, err := srv.Client().Do(logoutReq)
	require.NoError(t, err)
	defer logoutResp.Body.Close()
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)

	// the old token is now dead
	recheckReq, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/session", nil)
	require.NoError(t, err)
	recheckReq.AddCookie(cookie)

	recheckResp, err := srv.Client().Do(recheckReq)
	require.NoError(t, err)
	defer recheckResp.Body.Close()

	var recheck models.SessionCheckResult
	require.NoError(t, json.NewDecoder(recheckResp.Body).Decode(&recheck))
	assert.False(t, recheck.Authenticated, "a deleted session must not validate")
}

// TestFullStack_RateLimitAfterFiveFailures verifies the attempt budget over
// real HTTP: five wrong-password attempts are credential failures, the
// sixth is blocked by the limiter, and the block also stops attempts with
// the correct password.
func TestFullStack_RateLimitAfterFiveFailures(t *testing.T) {
	if testing.Short() {
		t.Skip("full stack, five timing floors")
	}

	srv := newFullStack(t, config.Development)

	for i := 0; i < 5; i++ {
		resp := postLogin(t, srv, "alice@example.com", "wrong-password")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "attempt %d should fail on credentials, not the limiter", i+1)
		resp.Body.Close()
	}

	resp := postLogin(t, srv, "alice@example.com", "wrong-password")
	defer resp.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var result models.LoginResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Contains(t, result.Message, "Too many login attempts")
	require.NotNil(t, result.Remaining)
	assert.Zero(t, *result.Remaining)

	// correct credentials are blocked too while the window lasts
	blocked := postLogin(t, srv, "alice@example.com", "correct-password")
	defer blocked.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, blocked.StatusCode)

	// validation failures never consume budget and are still answered
	malformed := postLogin(t, srv, "not-an-email", "whatever")
	defer malformed.Body.Close()
	assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)
}

// TestFullStack_UnknownAndWrongPasswordLookAlike verifies over real HTTP
// that the two credential failures share status and message.
func TestFullStack_UnknownAndWrongPasswordLookAlike(t *testing.T) {
	if testing.Short() {
		t.Skip("full stack, two timing floors")
	}

	srv := newFullStack(t, config.Development)

	unknown := postLogin(t, srv, "nobody@example.com", "whatever-password")
	defer unknown.Body.Close()
	wrong := postLogin(t, srv, "alice@example.com", "wrong-password")
	defer wrong.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, wrong.StatusCode)

	var unknownResult, wrongResult models.LoginResult
	require.NoError(t, json.NewDecoder(unknown.Body).Decode(&unknownResult))
	require.NoError(t, json.NewDecoder(wrong.Body).Decode(&wrongResult))
	assert.Equal(t, unknownResult.Message, wrongResult.Message)
}
