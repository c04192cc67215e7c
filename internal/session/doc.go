// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session orchestrates a chat session end to end.
//
// The Orchestrator is the only component that coordinates the others: it
// classifies each user message, resolves the endpoint, drives the network
// call, and owns all transient turn state (busy flag, streaming view,
// last error, image generation state). The UI issues commands and renders
// read-only projections; it never touches the transcript directly.
//
// At most one send is in flight at a time. A send while busy is refused
// without side effects rather than queued or preempted.
package session
