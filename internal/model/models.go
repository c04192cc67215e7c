// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// MODEL ID TYPE
// =============================================================================

// ModelID identifies an assistant model. The set is closed; identifiers
// outside it are treated as ModelO1 wherever a model must be resolved.
type ModelID string

const (
	// ModelO1 is the primary reasoning model.
	ModelO1 ModelID = "o1"

	// ModelO1Mini is the fast lightweight variant.
	ModelO1Mini ModelID = "o1-mini"

	// ModelV1 is the alternate general model.
	ModelV1 ModelID = "v1"

	// ModelImageGen is the image generation model. It is selected by
	// intent classification, not offered in the picker.
	ModelImageGen ModelID = "image-gen"
)

// String returns the raw model identifier.
func (id ModelID) String() string {
	return string(id)
}

// IsValid reports whether the identifier names a known model.
func (id ModelID) IsValid() bool {
	_, ok := Models[id]
	return ok
}

// DisplayName returns the branded name shown in the UI. Unknown identifiers
// fall back to the raw string rather than guessing.
func (id ModelID) DisplayName() string {
	if info, ok := Models[id]; ok {
		return info.Name
	}
	return string(id)
}

// Normalize maps unknown identifiers to ModelO1 so lookups downstream are
// total. Known identifiers pass through unchanged.
func Normalize(id ModelID) ModelID {
	if id.IsValid() {
		return id
	}
	return ModelO1
}

// =============================================================================
// IMAGE BACKEND
// =============================================================================

// ImageBackend selects which upstream service renders generated images.
type ImageBackend string

const (
	BackendDallE           ImageBackend = "dall-e"
	BackendStableDiffusion ImageBackend = "stable-diffusion"
)

// String returns the raw backend identifier.
func (b ImageBackend) String() string {
	return string(b)
}

// IsValid reports whether the backend is one of the supported services.
func (b ImageBackend) IsValid() bool {
	return b == BackendDallE || b == BackendStableDiffusion
}

// =============================================================================
// MODEL REGISTRY
// =============================================================================

// ModelInfo contains display metadata for a model.
type ModelInfo struct {
	// ID is the model identifier used internally and in routing
	ID ModelID `json:"id"`

	// Name is the branded display name
	Name string `json:"name"`

	// Description is a brief explanation of the model's strengths
	Description string `json:"description"`

	// Selectable reports whether the model appears in the picker
	Selectable bool `json:"selectable"`
}

// Models is the registry of known models with their metadata.
var Models = map[ModelID]ModelInfo{
	ModelO1: {
		ID:          ModelO1,
		Name:        "Atomine O1",
		Description: "Primary reasoning model for long or complex prompts",
		Selectable:  true,
	},
	ModelO1Mini: {
		ID:          ModelO1Mini,
		Name:        "Atomine O1 Mini",
		Description: "Fast lightweight model for short exchanges",
		Selectable:  true,
	},
	ModelV1: {
		ID:          ModelV1,
		Name:        "Atomine V1",
		Description: "Alternate general model",
		Selectable:  true,
	},
	ModelImageGen: {
		ID:          ModelImageGen,
		Name:        "Atomine Vision O1",
		Description: "Image generation, chosen automatically by intent",
		Selectable:  false,
	},
}

// SelectableModels returns the models offered in the picker, in a stable
// order.
func SelectableModels() []ModelInfo {
	order := []ModelID{ModelO1, ModelO1Mini, ModelV1}
	out := make([]ModelInfo, 0, len(order))
	for _, id := range order {
		out = append(out, Models[id])
	}
	return out
}
