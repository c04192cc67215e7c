// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atomine/atomine-tui/internal/model"
	"github.com/atomine/atomine-tui/internal/ui/styles"
	"github.com/atomine/atomine-tui/internal/util"
)

// View renders the whole chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.input.View(),
		m.statusBar(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Sidebar.Render(m.sidebar()),
		main,
	)
}

// =============================================================================
// SIDEBAR
// =============================================================================

// sidebar renders folders and the conversation list.
func (m Model) sidebar() string {
	var b strings.Builder

	convs := m.orch.Conversations()
	for _, folder := range m.orch.Folders() {
		marker := "v"
		if !folder.Expanded {
			marker = ">"
		}
		b.WriteString(styles.SidebarTitle.Render(marker + " " + folder.Name))
		b.WriteString("\n")

		if !folder.Expanded {
			continue
		}
		for _, conv := range convs {
			title := util.TruncateWidth(conv.Title, sidebarWidth-4)
			if pad := sidebarWidth - 4 - util.StringWidth(title); pad > 0 {
				title += strings.Repeat(" ", pad)
			}
			if conv.Active {
				b.WriteString(styles.ConversationActive.Render("* " + title))
				b.WriteString("\n")
				if last := conv.LastMessage(); last != nil {
					preview := strings.ReplaceAll(last.Preview(80), "\n", " ")
					b.WriteString(styles.Timestamp.Render("    " + util.TruncateWidth(preview, sidebarWidth-6)))
					b.WriteString("\n")
				}
			} else {
				b.WriteString(styles.ConversationInactive.Render("  " + title))
				b.WriteString("\n")
			}
		}
	}

	return lipgloss.NewStyle().Width(sidebarWidth).Height(m.height - 1).Render(b.String())
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshTranscript rebuilds the viewport content from the projections.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
}

// transcript renders the active conversation plus any in-flight state.
func (m Model) transcript() string {
	msgs := m.orch.Transcript()
	if len(msgs) == 0 && !m.orch.Busy() {
		return m.welcome()
	}

	var b strings.Builder
	for _, msg := range msgs {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if streaming := m.orch.Streaming(); streaming != "" {
		b.WriteString(styles.AssistantLabel.Render(model.RoleAssistant.DisplayName()))
		b.WriteString("\n")
		b.WriteString(streaming)
		b.WriteString("\n")
	}

	if state := m.orch.ImageGeneration(); state.Loading {
		b.WriteString(styles.StatusBusy.Render(m.spin.View() + " Generating image..."))
		b.WriteString("\n")
	} else if state.Error != "" {
		b.WriteString(styles.ErrorText.Render(state.Error))
		b.WriteString("\n")
	}

	if errText := m.orch.LastError(); errText != "" {
		b.WriteString(styles.ErrorText.Render(errText))
		b.WriteString("\n")
	}

	return b.String()
}

// renderMessage renders one completed turn.
func (m Model) renderMessage(msg *model.Message) string {
	var b strings.Builder

	label := styles.UserLabel.Render(msg.Role.DisplayName())
	if msg.Role == model.RoleAssistant {
		label = styles.AssistantLabel.Render(msg.Role.DisplayName())
	}
	b.WriteString(label)
	if m.showTimestamps {
		b.WriteString(" " + styles.Timestamp.Render(msg.Timestamp.Format("15:04")))
	}
	b.WriteString("\n")

	content := msg.Content
	if msg.Role == model.RoleAssistant && m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}
	b.WriteString(content)
	b.WriteString("\n")

	return b.String()
}

// welcome fills the empty state before the first message.
func (m Model) welcome() string {
	name := m.orch.ActiveModel().DisplayName()
	lines := []string{
		"",
		styles.AssistantLabel.Render("Atomine"),
		"",
		"Start chatting with " + styles.ModelBadge.Render(name) + ".",
		"",
		styles.ConversationInactive.Render("Ask anything, paste an image URL to analyze it,"),
		styles.ConversationInactive.Render("or say \"draw a picture of...\" to generate one."),
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// STATUS BAR
// =============================================================================

// statusBar renders the bottom line: model badge, busy state, hints.
func (m Model) statusBar() string {
	var parts []string

	parts = append(parts, styles.ModelBadge.Render(m.orch.ActiveModel().DisplayName()))

	if conv := m.orch.ActiveConversation(); conv != nil && conv.MessageCount() > 0 {
		parts = append(parts, styles.Timestamp.Render(
			fmt.Sprintf("%d msgs ~%d tok", conv.MessageCount(), conv.EstimateTokens())))
	}

	if m.orch.Busy() {
		parts = append(parts, styles.StatusBusy.Render(m.spin.View()+" thinking"))
	}

	parts = append(parts, styles.ConversationInactive.Render("ctrl+n new | ctrl+o model | ctrl+c quit"))

	return styles.StatusBar.Width(m.transcriptWidth()).Render(strings.Join(parts, "  "))
}
