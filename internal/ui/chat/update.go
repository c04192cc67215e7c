// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomine/atomine-tui/internal/model"
)

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputHeight := m.input.Height() + 1
		vpHeight := m.height - inputHeight - 2
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.transcriptWidth(), vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.transcriptWidth()
			m.viewport.Height = vpHeight
		}
		m.input.SetWidth(m.transcriptWidth())
		m.initRenderer()
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.orch.Busy() {
				// Blank sends and sends while busy change nothing.
				return m, nil
			}
			m.input.Reset()
			cmds = append(cmds, sendCmd(m.orch, text), m.spin.Tick, streamTickCmd())
			m.refreshTranscript()
			return m, tea.Batch(cmds...)

		case "ctrl+n":
			m.orch.NewChat()
			m.refreshTranscript()
			return m, nil

		case "ctrl+d":
			if active := m.orch.Conversations(); len(active) > 0 {
				for _, c := range active {
					if c.Active {
						m.orch.DeleteConversation(c.ID)
						break
					}
				}
			}
			m.refreshTranscript()
			return m, nil

		case "ctrl+p":
			m.switchRelative(-1)
			return m, nil

		case "ctrl+j":
			m.switchRelative(1)
			return m, nil

		case "ctrl+o":
			m.cycleModel()
			return m, nil
		}

	case sendResultMsg:
		// Rejections (blank, busy) need no surface changes; failures are
		// already reflected in the projections.
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case streamTickMsg:
		if !m.orch.Busy() {
			m.refreshTranscript()
			m.viewport.GotoBottom()
			return m, nil
		}
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, streamTickCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// switchRelative moves the active conversation up or down the sidebar.
func (m *Model) switchRelative(delta int) {
	convs := m.orch.Conversations()
	active := -1
	for i, c := range convs {
		if c.Active {
			active = i
			break
		}
	}
	if active == -1 {
		return
	}
	next := active + delta
	if next < 0 || next >= len(convs) {
		return
	}
	m.orch.SwitchConversation(convs[next].ID)
	m.refreshTranscript()
}

// cycleModel steps the active conversation through the selectable models.
func (m *Model) cycleModel() {
	current := m.orch.ActiveModel()
	selectable := model.SelectableModels()
	for i, info := range selectable {
		if info.ID == current {
			m.orch.SetActiveModel(selectable[(i+1)%len(selectable)].ID)
			return
		}
	}
	m.orch.SetActiveModel(selectable[0].ID)
}
