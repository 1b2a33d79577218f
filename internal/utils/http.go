// Package utils provides small helpers shared across the application:
// HTTP response writing and client-address extraction.
package utils

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// WriteJSON serializes data to JSON and writes it to the HTTP response with
// the given status code, setting the "Content-Type" header to
// "application/json".
//
// If marshaling fails it responds with 500 Internal Server Error and
// returns a wrapped error. Returns the number of body bytes written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ClientIP extracts the originating client address of a request. It prefers
// the first entry of the "X-Forwarded-For" header, which is what a reverse
// proxy in front of the server populates, and falls back to the connection's
// remote address with the port stripped.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
