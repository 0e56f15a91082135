// ABOUTME: Bubbletea model for playback status TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Source
	file    string
	backend string

	// Stream
	format string

	// Playback
	state   string
	elapsed time.Duration

	// Stats
	enqueued   int64
	played     int64
	dropped    int64
	queueDepth int
	queueCap   int

	// Dimensions
	width  int
	height int

	ctrl *Control
}

// StatusMsg updates TUI state
type StatusMsg struct {
	File       string
	Backend    string
	Format     string
	State      string
	Elapsed    time.Duration
	Enqueued   int64
	Played     int64
	Dropped    int64
	QueueDepth int
	QueueCap   int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStream()
	s += m.renderQueue()
	s += m.renderStats()
	s += m.renderHelp()

	return s
}

// renderHeader renders the player title and state
func (m Model) renderHeader() string {
	return fmt.Sprintf(`┌─ pcmcast ────────────────────────────────────────────┐
│ State:  %-45s│
├──────────────────────────────────────────────────────┤
`, m.state)
}

// renderStream renders the current source and format
func (m Model) renderStream() string {
	if m.file == "" {
		return "│ No source                                            │\n"
	}

	s := fmt.Sprintf("│ Playing: %-44s│\n", truncate(m.file, 44))
	s += fmt.Sprintf("│ Format:  %-44s│\n", m.format)
	s += fmt.Sprintf("│ Output:  %-44s│\n", m.backend)
	s += fmt.Sprintf("│ Elapsed: %-44s│\n", m.elapsed.Truncate(100*time.Millisecond))
	return s
}

// renderQueue renders queue occupancy
func (m Model) renderQueue() string {
	cap := m.queueCap
	if cap == 0 {
		cap = 1
	}
	bar := renderBar(m.queueDepth, cap, 20)
	return fmt.Sprintf("│ Queue:   [%s] %3d/%-3d%-18s│\n", bar, m.queueDepth, m.queueCap, "")
}

// renderStats renders playback statistics
func (m Model) renderStats() string {
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Stats:  Enqueued: %-6d Played: %-6d Dropped: %-4d│
`, m.enqueued, m.played, m.dropped)
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ q:Quit                                               │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.ctrl != nil {
			select {
			case m.ctrl.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.File != "" {
		m.file = msg.File
	}
	if msg.Backend != "" {
		m.backend = msg.Backend
	}
	if msg.Format != "" {
		m.format = msg.Format
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Elapsed != 0 {
		m.elapsed = msg.Elapsed
	}
	if msg.QueueCap != 0 {
		m.queueCap = msg.QueueCap
	}
	m.enqueued = msg.Enqueued
	m.played = msg.Played
	m.dropped = msg.Dropped
	m.queueDepth = msg.QueueDepth
}

// Utility functions
func renderBar(value, max, width int) string {
	if value > max {
		value = max
	}
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
