package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/models"
)

type httpServerAdapter struct {
	client *resty.Client

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.BaseURL and gives the underlying client a cookie jar, which is where
// the session cookie lives for the lifetime of the adapter.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetCookieJar(jar)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// /api/auth/login. On success the server's Set-Cookie lands in the
// client's jar and rides along on every later request. On a non-2xx status
// the decoded response body is returned alongside the mapped error so the
// UI can show the server's message.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Email: email, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("login request: %w", err)
	}

	var result models.LoginResult
	if decodeErr := json.Unmarshal(resp.Body(), &result); decodeErr != nil {
		result = models.LoginResult{}
	}

	if err = mapHTTPError(resp); err != nil {
		return result, err
	}

	h.logger.Debug().Msg("login succeeded, session cookie stored")
	return result, nil
}

// Logout implements [ServerAdapter]. It POSTs to /api/auth/logout and
// resets the cookie jar regardless of the outcome: a dead server must not
// leave the client carrying a session it believes is closed.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/auth/logout")

	// fresh jar either way
	if jar, jarErr := cookiejar.New(nil); jarErr == nil {
		h.client.SetCookieJar(jar)
	}

	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// SessionCheck implements [ServerAdapter]. It GETs /api/auth/session and
// decodes the authenticated flag.
func (h *httpServerAdapter) SessionCheck(ctx context.Context) (models.SessionCheckResult, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/auth/session")
	if err != nil {
		return models.SessionCheckResult{}, fmt.Errorf("session check request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionCheckResult{}, err
	}

	var result models.SessionCheckResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.SessionCheckResult{}, fmt.Errorf("decode session check response: %w", err)
	}

	return result, nil
}
