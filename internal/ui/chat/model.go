// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomine/atomine-tui/internal/config"
	"github.com/atomine/atomine-tui/internal/session"
	"github.com/atomine/atomine-tui/internal/ui/styles"
)

// sidebarWidth is the fixed width of the conversation list column.
const sidebarWidth = 28

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	orch *session.Orchestrator

	viewport viewport.Model
	input    textarea.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	showTimestamps bool
	markdown       bool
}

// New creates the chat screen over an orchestrator.
func New(orch *session.Orchestrator, cfg *config.Config) Model {
	input := textarea.New()
	input.Placeholder = "Message Atomine..."
	input.CharLimit = 0
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Amber)

	return Model{
		orch:           orch,
		input:          input,
		spin:           spin,
		showTimestamps: cfg.UI.ShowTimestamps,
		markdown:       cfg.UI.MarkdownRendering,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// initRenderer builds the markdown renderer for the current width.
func (m *Model) initRenderer() {
	if !m.markdown {
		return
	}
	wrap := m.transcriptWidth() - 2
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Plain text is an acceptable fallback.
		m.renderer = nil
		return
	}
	m.renderer = r
}

// transcriptWidth is the column width left of the sidebar.
func (m *Model) transcriptWidth() int {
	w := m.width - sidebarWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}
