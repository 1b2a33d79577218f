// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, the authentication endpoints, and middleware.
// Cross-cutting concerns such as request tracing and access logging are
// handled here before requests are delegated to the service layer; the
// session cookie is issued and cleared here and nowhere else.
package http
