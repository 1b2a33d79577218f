package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/models"
)

// TestRoutes verifies the route table: which method and path reach which
// handler, and that unknown routes and wrong methods are rejected.
func TestRoutes(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ models.LoginRequest) (models.Session, error) {
			return stubSession("opaque-session-token"), nil
		},
		logoutFn:          func(_ context.Context, _ string) {},
		isAuthenticatedFn: func(_ context.Context, _ string) bool { return false },
	}

	h := newHandlerWithAuth(t, auth, config.Development)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "Login", method: http.MethodPost, path: "/api/auth/login", body: `{"email":"alice@example.com","password":"pw"}`, wantStatus: http.StatusOK},
		{name: "Logout", method: http.MethodPost, path: "/api/auth/logout", wantStatus: http.StatusOK},
		{name: "Session", method: http.MethodGet, path: "/api/auth/session", wantStatus: http.StatusOK},
		{name: "LoginWrongMethod", method: http.MethodGet, path: "/api/auth/login", wantStatus: http.StatusMethodNotAllowed},
		{name: "SessionWrongMethod", method: http.MethodPost, path: "/api/auth/session", wantStatus: http.StatusMethodNotAllowed},
		{name: "UnknownRoute", method: http.MethodGet, path: "/api/auth/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)

			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

// TestRoutes_TraceID verifies that every response carries a trace
// identifier, echoing the client's when one is supplied.
func TestRoutes_TraceID(t *testing.T) {
	auth := &mockAuthService{
		isAuthenticatedFn: func(_ context.Context, _ string) bool { return false },
	}

	h := newHandlerWithAuth(t, auth, config.Development)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	t.Run("Generated", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/api/auth/session")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.NotEmpty(t, resp.Header.Get(traceIDHeader))
	})

	t.Run("Echoed", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/session", nil)
		require.NoError(t, err)
		req.Header.Set(traceIDHeader, "trace-from-client")

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "trace-from-client", resp.Header.Get(traceIDHeader))
	})
}
