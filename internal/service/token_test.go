package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	seen := make(map[string]bool)

	for range 100 {
		token, err := generateSessionToken()
		require.NoError(t, err)

		decoded, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err, "token must survive a cookie value untouched")
		assert.Len(t, decoded, sessionTokenBytes)

		assert.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}
