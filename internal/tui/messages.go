package tui

import "github.com/MKhiriev/aifa-auth/models"

type sessionCheckedMsg struct {
	result models.SessionCheckResult
	err    error
}

type loginResultMsg struct {
	result models.LoginResult
	err    error
}

type logoutDoneMsg struct {
	err error
}

// authStateMsg carries a change published by the authstate store into the
// Bubble Tea event loop.
type authStateMsg bool

type navigateMsg struct {
	page string
}
