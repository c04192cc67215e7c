// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomine/atomine-tui/internal/session"
)

// =============================================================================
// FRAME RATE
// =============================================================================

// frameInterval caps streaming refreshes at ~30fps. Re-rendering per
// chunk flickers and burns CPU; polling the projection on a frame clock
// stays smooth at any chunk rate.
const frameInterval = 33 * time.Millisecond

// =============================================================================
// MESSAGES
// =============================================================================

// sendResultMsg reports that a send turn finished, successfully or not.
// The outcome itself is read from the orchestrator's projections.
type sendResultMsg struct {
	err error
}

// streamTickMsg drives the streaming refresh loop.
type streamTickMsg time.Time

// =============================================================================
// COMMANDS
// =============================================================================

// sendCmd runs one send turn in a command goroutine.
func sendCmd(o *session.Orchestrator, text string) tea.Cmd {
	return func() tea.Msg {
		return sendResultMsg{err: o.Send(context.Background(), text)}
	}
}

// streamTickCmd schedules the next streaming frame.
func streamTickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return streamTickMsg(t)
	})
}
