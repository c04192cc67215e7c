// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "github.com/atomine/atomine-tui/internal/model"

// ============================================================================
// ENDPOINT TABLES
// ============================================================================

// chatEndpoints maps each chat model to its upstream integration path.
var chatEndpoints = map[model.ModelID]string{
	model.ModelO1:     "/integrations/chat-gpt/conversationgpt4",
	model.ModelO1Mini: "/integrations/google-gemini-1-5/",
	model.ModelV1:     "/integrations/anthropic-claude-sonnet-3-5/",
}

// imageEndpoints maps each image backend to its upstream integration path.
var imageEndpoints = map[model.ImageBackend]string{
	model.BackendDallE:           "/integrations/dall-e-3/",
	model.BackendStableDiffusion: "/integrations/stable-diffusion-v-3/",
}

// AnalysisPath is the fixed upstream path for image analysis requests.
// Analysis does not route by model: every analysis goes to the vision
// integration regardless of the active selection.
const AnalysisPath = "/integrations/gpt-vision/"

// ============================================================================
// RESOLUTION
// ============================================================================

// Resolve maps a model selection to its upstream endpoint. It is total:
// unknown model identifiers resolve to the primary chat endpoint rather
// than failing, and an unknown image backend falls back to dall-e.
func Resolve(id model.ModelID, backend model.ImageBackend) Endpoint {
	if id == model.ModelImageGen {
		path, ok := imageEndpoints[backend]
		if !ok {
			path = imageEndpoints[model.BackendDallE]
		}
		return Endpoint{Path: path, DisplayName: id.DisplayName()}
	}

	id = model.Normalize(id)
	return Endpoint{Path: chatEndpoints[id], DisplayName: id.DisplayName()}
}

// ResolveAnalysis returns the fixed image-analysis endpoint.
func ResolveAnalysis() Endpoint {
	return Endpoint{Path: AnalysisPath, DisplayName: "Atomine Vision O1"}
}
