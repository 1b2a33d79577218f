package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// sessionTokenBytes is the entropy of a session token. 32 random bytes is
// far beyond brute-force reach for a 7-day credential.
const sessionTokenBytes = 32

// generateSessionToken produces an opaque random bearer token, base64url
// encoded so it travels safely in a cookie value.
func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
