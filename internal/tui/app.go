// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/aifa-auth/internal/adapter"
	"github.com/MKhiriev/aifa-auth/internal/authstate"
)

// appModel is the root model. It shows the current authentication state and
// switches to the login form on demand. State changes arrive as
// [authStateMsg] through a subscription on the authstate store, so the
// status line is always a render of the store, never a local copy.
type appModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter
	state   *authstate.Store

	page    string // "status" or "login"
	login   *loginModel
	stateCh chan bool
	cancel  func()

	checking bool
	errMsg   string
}

func newAppModel(ctx context.Context, srv adapter.ServerAdapter, state *authstate.Store) *appModel {
	stateCh := make(chan bool, 8)
	cancel := state.Subscribe(func(authenticated bool) {
		select {
		case stateCh <- authenticated:
		default:
		}
	})

	return &appModel{
		ctx:     ctx,
		adapter: srv,
		state:   state,
		page:    "status",
		login:   newLoginModel(ctx, srv, state),
		stateCh: stateCh,
		cancel:  cancel,
	}
}

// Init implements [tea.Model]. It kicks off the initial session check and
// starts listening for auth-state changes.
func (a *appModel) Init() tea.Cmd {
	a.checking = true
	return tea.Batch(a.cmdSessionCheck(), a.waitForStateChange())
}

// Update implements [tea.Model].
func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authStateMsg:
		// re-render with the new store value and keep listening
		return a, a.waitForStateChange()

	case sessionCheckedMsg:
		a.checking = false
		if msg.err != nil {
			a.errMsg = "Could not reach the server: " + msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.state.Hydrate(msg.result.Authenticated)
		return a, nil

	case logoutDoneMsg:
		a.state.Logout()
		if msg.err != nil {
			a.errMsg = "Logout may not have reached the server"
		}
		return a, nil

	case navigateMsg:
		a.page = msg.page
		return a, nil
	}

	if a.page == "login" {
		model, cmd := a.login.Update(msg)
		a.login = model
		return a, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			a.cancel()
			return a, tea.Quit
		case "l":
			if !a.state.Authenticated() {
				a.login.reset()
				a.page = "login"
				return a, a.login.Init()
			}
			return a, nil
		case "o":
			if a.state.Authenticated() {
				return a, a.cmdLogout()
			}
			return a, nil
		case "r":
			a.checking = true
			return a, a.cmdSessionCheck()
		}
	}

	return a, nil
}

// View implements [tea.Model].
func (a *appModel) View() string {
	if a.page == "login" {
		return a.login.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("AIFA account"))
	b.WriteString("\n\n")

	switch {
	case a.checking:
		b.WriteString("Checking session...")
	case a.state.Authenticated():
		b.WriteString(signedInStyle.Render("Signed in"))
	default:
		b.WriteString("Signed out")
	}
	b.WriteString("\n")

	if a.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(a.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.state.Authenticated() {
		b.WriteString(helpStyle.Render("o: sign out • r: re-check session • q: quit"))
	} else {
		b.WriteString(helpStyle.Render("l: sign in • r: re-check session • q: quit"))
	}

	return appStyle.Render(b.String())
}

func (a *appModel) waitForStateChange() tea.Cmd {
	return func() tea.Msg {
		return authStateMsg(<-a.stateCh)
	}
}

func (a *appModel) cmdSessionCheck() tea.Cmd {
	ctx, srv := a.ctx, a.adapter
	return func() tea.Msg {
		result, err := srv.SessionCheck(ctx)
		return sessionCheckedMsg{result: result, err: err}
	}
}

func (a *appModel) cmdLogout() tea.Cmd {
	ctx, srv := a.ctx, a.adapter
	return func() tea.Msg {
		return logoutDoneMsg{err: srv.Logout(ctx)}
	}
}
