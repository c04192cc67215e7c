// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router classifies user messages and resolves model endpoints.
//
// Classification and resolution are pure functions over lookup tables:
// no network, no state, no clock. The session orchestrator calls Classify
// to pick a pipeline (chat, image generation, image analysis), InferModel
// to pick a model for chat turns, and Resolve to turn the chosen model
// into an upstream endpoint path.
package router

import "fmt"

// ============================================================================
// INTENT TYPE
// ============================================================================

// Intent represents the kind of handling a user message asks for.
type Intent int

const (
	// IntentChat is the default: stream a text reply from a chat model.
	IntentChat Intent = iota
	// IntentImageGeneration renders an image from the message as prompt.
	IntentImageGeneration
	// IntentImageAnalysis describes an image the message links to.
	IntentImageAnalysis
)

// String returns the human-readable name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentChat:
		return "Chat"
	case IntentImageGeneration:
		return "ImageGeneration"
	case IntentImageAnalysis:
		return "ImageAnalysis"
	default:
		return fmt.Sprintf("Intent(%d)", i)
	}
}

// ============================================================================
// ENDPOINT TYPE
// ============================================================================

// Endpoint is a resolved upstream target: the path joined onto the proxy
// base URL plus the display name shown while the request runs.
type Endpoint struct {
	Path        string
	DisplayName string
}
