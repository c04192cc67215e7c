// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %v, want %v", msg.Role, RoleUser)
	}
	if msg.Kind != KindText {
		t.Errorf("Kind = %v, want %v", msg.Kind, KindText)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "hello")
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID = %q, want msg_ prefix", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestNewImageMessage(t *testing.T) {
	msg := NewImageMessage("https://example.com/img.png")

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %v, want %v", msg.Role, RoleAssistant)
	}
	if msg.Kind != KindImage {
		t.Errorf("Kind = %v, want %v", msg.Kind, KindImage)
	}
	want := "![Generated Image](https://example.com/img.png)"
	if msg.Content != want {
		t.Errorf("Content = %q, want %q", msg.Content, want)
	}
}

func TestMessagePreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short content unchanged", "hi", 10, "hi"},
		{"long content truncated", "abcdefghijklmnop", 10, "abcdefg..."},
		{"multibyte safe", "héllo wörld exträ", 10, "héllo w..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewUserMessage(tt.content)
			if got := msg.Preview(tt.maxLen); got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestNewConversation(t *testing.T) {
	conv := NewConversation(ModelO1Mini)

	if !strings.HasPrefix(conv.ID, "conv_") {
		t.Errorf("ID = %q, want conv_ prefix", conv.ID)
	}
	if conv.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", conv.Title, DefaultTitle)
	}
	if conv.Model != ModelO1Mini {
		t.Errorf("Model = %v, want %v", conv.Model, ModelO1Mini)
	}
	if conv.Active {
		t.Error("new conversation should not be active until the store says so")
	}
	if !conv.IsEmpty() {
		t.Error("new conversation should have an empty transcript")
	}
}

func TestConversationAddMessage(t *testing.T) {
	conv := NewConversation(ModelO1)

	conv.AddMessage(NewUserMessage("first"))
	conv.AddMessage(NewAssistantMessage("second"))

	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.LastMessage().Content != "second" {
		t.Errorf("LastMessage = %q, want %q", conv.LastMessage().Content, "second")
	}
	if conv.IsEmpty() {
		t.Error("IsEmpty = true after AddMessage")
	}
}

func TestConversationPruning(t *testing.T) {
	conv := NewConversation(ModelO1)

	for i := 0; i < MaxMessages+10; i++ {
		conv.AddMessage(NewUserMessage("m"))
	}

	if conv.MessageCount() != MaxMessages {
		t.Errorf("MessageCount = %d, want %d", conv.MessageCount(), MaxMessages)
	}
}

func TestModelIDDisplayName(t *testing.T) {
	tests := []struct {
		id   ModelID
		want string
	}{
		{ModelO1, "Atomine O1"},
		{ModelO1Mini, "Atomine O1 Mini"},
		{ModelV1, "Atomine V1"},
		{ModelImageGen, "Atomine Vision O1"},
		{ModelID("mystery"), "mystery"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			if got := tt.id.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(ModelV1); got != ModelV1 {
		t.Errorf("Normalize(v1) = %v, want v1", got)
	}
	if got := Normalize(ModelID("gpt-9")); got != ModelO1 {
		t.Errorf("Normalize(unknown) = %v, want o1", got)
	}
	if got := Normalize(ModelID("")); got != ModelO1 {
		t.Errorf("Normalize(empty) = %v, want o1", got)
	}
}

func TestSelectableModels(t *testing.T) {
	models := SelectableModels()

	if len(models) != 3 {
		t.Fatalf("len = %d, want 3", len(models))
	}
	for _, info := range models {
		if info.ID == ModelImageGen {
			t.Error("image-gen must not appear in the picker")
		}
	}
	if models[0].ID != ModelO1 {
		t.Errorf("first model = %v, want o1", models[0].ID)
	}
}

func TestDefaultFolder(t *testing.T) {
	f := DefaultFolder()

	if f.Name != "My Chats" {
		t.Errorf("Name = %q, want %q", f.Name, "My Chats")
	}
	if !f.Expanded {
		t.Error("default folder should start expanded")
	}
	if !strings.HasPrefix(f.ID, "folder_") {
		t.Errorf("ID = %q, want folder_ prefix", f.ID)
	}
}

func TestResponseModeIsValid(t *testing.T) {
	for _, m := range []ResponseMode{ModeThink, ModeDeepThink, ModeDeeperThink} {
		if !m.IsValid() {
			t.Errorf("%v.IsValid() = false", m)
		}
	}
	if ResponseMode("ponder").IsValid() {
		t.Error("unknown mode reported valid")
	}
}

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()

	if p.Creativity != 0.7 {
		t.Errorf("Creativity = %v, want 0.7", p.Creativity)
	}
	if p.ResponseLength != ResponseLengthAdaptive {
		t.Errorf("ResponseLength = %v, want adaptive", p.ResponseLength)
	}
	if p.Mode != ModeThink {
		t.Errorf("Mode = %v, want think", p.Mode)
	}
}
