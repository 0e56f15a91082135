// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for playback status UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Control carries user actions out of the TUI
type Control struct {
	Quit chan struct{}
}

// NewControl creates a new control handler
func NewControl() *Control {
	return &Control{
		Quit: make(chan struct{}, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(ctrl *Control) Model {
	return Model{
		state: "idle",
		ctrl:  ctrl,
	}
}

// Run starts the TUI
func Run(ctrl *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())
	return p, nil
}
