// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"testing"

	"github.com/atomine/atomine-tui/internal/model"
)

func TestResolveChatModels(t *testing.T) {
	tests := []struct {
		id       model.ModelID
		wantPath string
		wantName string
	}{
		{model.ModelO1, "/integrations/chat-gpt/conversationgpt4", "Atomine O1"},
		{model.ModelO1Mini, "/integrations/google-gemini-1-5/", "Atomine O1 Mini"},
		{model.ModelV1, "/integrations/anthropic-claude-sonnet-3-5/", "Atomine V1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			ep := Resolve(tt.id, model.BackendDallE)
			if ep.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", ep.Path, tt.wantPath)
			}
			if ep.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", ep.DisplayName, tt.wantName)
			}
		})
	}
}

func TestResolveImageBackends(t *testing.T) {
	ep := Resolve(model.ModelImageGen, model.BackendDallE)
	if ep.Path != "/integrations/dall-e-3/" {
		t.Errorf("dall-e Path = %q", ep.Path)
	}
	if ep.DisplayName != "Atomine Vision O1" {
		t.Errorf("DisplayName = %q, want Atomine Vision O1", ep.DisplayName)
	}

	ep = Resolve(model.ModelImageGen, model.BackendStableDiffusion)
	if ep.Path != "/integrations/stable-diffusion-v-3/" {
		t.Errorf("stable-diffusion Path = %q", ep.Path)
	}
}

// Resolve never fails: unknown inputs fall back instead of erroring.
func TestResolveTotal(t *testing.T) {
	ep := Resolve(model.ModelID("unknown-model"), model.BackendDallE)
	if ep.Path != "/integrations/chat-gpt/conversationgpt4" {
		t.Errorf("unknown model Path = %q, want primary chat endpoint", ep.Path)
	}

	ep = Resolve(model.ModelImageGen, model.ImageBackend("midjourney"))
	if ep.Path != "/integrations/dall-e-3/" {
		t.Errorf("unknown backend Path = %q, want dall-e endpoint", ep.Path)
	}

	ep = Resolve(model.ModelID(""), model.ImageBackend(""))
	if ep.Path == "" {
		t.Error("empty inputs resolved to empty path")
	}
}

func TestResolveAnalysis(t *testing.T) {
	ep := ResolveAnalysis()
	if ep.Path != "/integrations/gpt-vision/" {
		t.Errorf("Path = %q, want /integrations/gpt-vision/", ep.Path)
	}
}
