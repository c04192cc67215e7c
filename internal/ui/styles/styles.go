// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the atomine TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// COLORS
// =============================================================================

// Accent - model names, selections, the brand color
var Accent = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - user message markers, hints
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Rose - errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - busy and loading indicators
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Surface - main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0C0C0C"}

// Overlay - borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#262626"}

// TextPrimary - main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#FFFFFF"}

// TextMuted - hints, timestamps, inactive sidebar entries
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#888888"}

// =============================================================================
// SHARED STYLES
// =============================================================================

// Sidebar frames the conversation list.
var Sidebar = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderRight(true).
	BorderForeground(Overlay).
	PaddingRight(1)

// SidebarTitle heads the sidebar folder sections.
var SidebarTitle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Bold(true)

// ConversationActive highlights the active conversation row.
var ConversationActive = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Background(Overlay).
	Bold(true)

// ConversationInactive renders the other rows.
var ConversationInactive = lipgloss.NewStyle().
	Foreground(TextMuted)

// UserLabel marks user turns in the transcript.
var UserLabel = lipgloss.NewStyle().
	Foreground(Cyan).
	Bold(true)

// AssistantLabel marks assistant turns in the transcript.
var AssistantLabel = lipgloss.NewStyle().
	Foreground(Accent).
	Bold(true)

// ErrorText renders user-facing failures.
var ErrorText = lipgloss.NewStyle().
	Foreground(Rose)

// StatusBusy renders the in-flight indicator.
var StatusBusy = lipgloss.NewStyle().
	Foreground(Amber)

// StatusBar frames the bottom status line.
var StatusBar = lipgloss.NewStyle().
	Foreground(TextMuted).
	BorderStyle(lipgloss.NormalBorder()).
	BorderTop(true).
	BorderForeground(Overlay)

// ModelBadge shows the active model in the status bar.
var ModelBadge = lipgloss.NewStyle().
	Foreground(Accent).
	Bold(true)

// Timestamp renders message times when enabled.
var Timestamp = lipgloss.NewStyle().
	Foreground(TextMuted)
