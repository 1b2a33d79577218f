// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/aifa-auth/models"
)

// sessionCookieName is the name of the auth cookie. The cookie carries the
// opaque session token and nothing else; all session state lives server-side.
const sessionCookieName = "auth_session"

// sessionCookie builds the cookie issued on successful login. HttpOnly keeps
// the token out of reach of page scripts, SameSite=Lax stops it riding along
// on cross-site POSTs, and Secure is set in production only so plain-HTTP
// local development keeps working.
func (h *Handler) sessionCookie(session models.Session) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.environment.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}

// expiredSessionCookie builds the cookie that clears the auth cookie on
// logout. Same attributes as issuance, otherwise browsers treat it as a
// different cookie and leave the original in place.
func (h *Handler) expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.environment.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionTokenFromRequest extracts the session token from the request's
// auth cookie. Returns the empty string when the cookie is absent.
func sessionTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
