// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"strings"

	"github.com/atomine/atomine-tui/internal/model"
	"github.com/atomine/atomine-tui/internal/util"
)

// ============================================================================
// CLASSIFICATION TABLES
// ============================================================================

// The image-generation trigger is a verb + optional article + noun grammar
// anchored at the start of the message. Keeping it as explicit word sets
// instead of a regex makes the grammar auditable and trivially extensible.

var imageVerbs = map[string]bool{
	"generate": true,
	"create":   true,
	"draw":     true,
	"make":     true,
	"design":   true,
	"imagine":  true,
}

var imageNouns = []string{
	"image",
	"picture",
	"artwork",
	"illustration",
	"photo",
}

// imageFileSuffixes marks a message as an image-analysis request when the
// text ends with one of these extensions.
var imageFileSuffixes = []string{
	".jpg",
	".jpeg",
	".png",
	".gif",
	".webp",
}

// longPromptRunes is the length above which chat turns are routed to the
// primary reasoning model regardless of the active selection.
const longPromptRunes = 100

// ============================================================================
// CLASSIFICATION FUNCTIONS
// ============================================================================

// Classify determines how a user message should be handled.
//
// Rules, in priority order:
//  1. ImageGeneration: starts with an image verb, an optional "a"/"an",
//     and an image noun ("draw a picture of...", "generate images of...")
//  2. ImageAnalysis: the text ends with an image file extension
//  3. Chat: everything else
//
// Matching is case-insensitive. The noun matches as a word prefix so
// plurals and trailing punctuation still trigger ("make images!").
func Classify(text string) Intent {
	if isImageGeneration(text) {
		return IntentImageGeneration
	}
	if isImageAnalysis(text) {
		return IntentImageAnalysis
	}
	return IntentChat
}

// isImageGeneration walks the verb/article/noun grammar over the first
// words of the message.
func isImageGeneration(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) < 2 {
		return false
	}
	if !imageVerbs[words[0]] {
		return false
	}

	i := 1
	if words[i] == "a" || words[i] == "an" {
		i++
		if i >= len(words) {
			return false
		}
	}

	for _, noun := range imageNouns {
		if strings.HasPrefix(words[i], noun) {
			return true
		}
	}
	return false
}

// isImageAnalysis reports whether the message ends with an image file
// extension, i.e. the user pasted an image URL or path to describe.
func isImageAnalysis(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, suffix := range imageFileSuffixes {
		if strings.HasSuffix(t, suffix) {
			return true
		}
	}
	return false
}

// InferModel picks the model for a message. Image-generation intent forces
// the image model; prompts longer than longPromptRunes go to the primary
// reasoning model; everything else keeps the active selection.
//
// The context argument is accepted for call-site compatibility and has no
// effect on the result.
func InferModel(text, context string, active model.ModelID) model.ModelID {
	_ = context

	if isImageGeneration(text) {
		return model.ModelImageGen
	}
	if util.RuneLen(text) > longPromptRunes {
		return model.ModelO1
	}
	return model.Normalize(active)
}
