// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/aifa-auth/internal/adapter"
	"github.com/MKhiriev/aifa-auth/internal/authstate"
)

// loginModel is the Bubble Tea model for the sign-in form. It renders email
// and password inputs and dispatches an async login command on submission.
// On success it flips the authstate store and navigates back to the status
// page; on rejection it shows the server's message.
type loginModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter
	state   *authstate.Store

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newLoginModel(ctx context.Context, srv adapter.ServerAdapter, state *authstate.Store) *loginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 128
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &loginModel{
		ctx:     ctx,
		adapter: srv,
		state:   state,
		inputs:  []textinput.Model{emailInput, passwordInput},
	}
}

// reset clears both inputs and any previous error so a reopened form never
// shows a stale password.
func (m *loginModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.submitting = false
	m.errMsg = ""
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) Update(msg tea.Msg) (*loginModel, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = result.result.Message
			if m.errMsg == "" {
				m.errMsg = "Login failed. Please try again."
			}
			return m, nil
		}

		m.state.Login()
		return m, func() tea.Msg { return navigateMsg{page: "status"} }
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return navigateMsg{page: "status"} }
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			email := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if email == "" || pass == "" {
				m.errMsg = "Email and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(email, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString("Email:    [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password: [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n\n")

	if m.submitting {
		b.WriteString("[Signing in...]\n")
	} else {
		b.WriteString("[Sign in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: back • tab: next field • enter: submit"))

	return appStyle.Render(b.String())
}

func (m *loginModel) cmdLogin(email, pass string) tea.Cmd {
	ctx, srv := m.ctx, m.adapter

	return func() tea.Msg {
		result, err := srv.Login(ctx, email, pass)
		return loginResultMsg{result: result, err: err}
	}
}

func (m *loginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *loginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
