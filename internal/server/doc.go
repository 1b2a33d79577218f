// Package server wires and runs the application's HTTP server.
//
// It owns the server lifecycle: startup, OS signal handling, and graceful
// shutdown so in-flight logins finish before the process exits.
package server
