package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/aifa-auth/internal/adapter"
	"github.com/MKhiriev/aifa-auth/internal/authstate"
	"github.com/MKhiriev/aifa-auth/internal/logger"
)

type TUI struct {
	adapter adapter.ServerAdapter
	state   *authstate.Store

	logger *logger.Logger
}

func New(adapter adapter.ServerAdapter, state *authstate.Store, logger *logger.Logger) *TUI {
	return &TUI{adapter: adapter, state: state, logger: logger}
}

// Run drives the terminal client until the user quits. The auth-state store
// is hydrated from the server before the first frame and kept current by
// the login and logout flows.
func (t *TUI) Run(ctx context.Context) error {
	root := newAppModel(ctx, t.adapter, t.state)

	_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
