// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The view is deliberately thin: every command is forwarded to the
// session orchestrator and every render reads its projections. Network
// work runs in Bubble Tea command goroutines; while a turn is in flight
// the view polls the streaming projection on a capped frame rate so
// tokens appear smoothly without re-rendering per chunk.
//
// # Key Bindings
//
//   - enter       send the composed message
//   - ctrl+n      start a new conversation
//   - ctrl+p/j    previous / next conversation
//   - ctrl+d      delete the active conversation
//   - ctrl+o      cycle the chat model
//   - ctrl+c, esc quit
package chat
