// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// TitleRuneLimit is the maximum length of an auto-derived conversation title.
// Titles are the first message cut to this many runes, no ellipsis.
const TitleRuneLimit = 30

// DefaultTitle names a conversation before its first user message arrives.
const DefaultTitle = "New Chat"

// MaxMessages is the maximum number of messages kept in a transcript.
// When exceeded, the oldest messages are pruned to bound memory growth.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a complete chat transcript with identity and metadata.
// Exactly one conversation in a store is active at a time; the Active flag
// here is maintained by the store, never set by callers directly.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	Model     ModelID   `json:"model"`
	FolderID  string    `json:"folder_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`
}

// NewConversation creates a new conversation with a generated ID, the
// default title, and an empty transcript.
func NewConversation(modelID ModelID) *Conversation {
	return &Conversation{
		ID:        generateConversationID(),
		Title:     DefaultTitle,
		Model:     modelID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message to the transcript.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
}

// LastMessage returns the most recent message, or nil if the transcript
// is empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages in the transcript.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if no messages have been exchanged yet.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// EstimateTokens sums the rough token estimates of every message.
func (c *Conversation) EstimateTokens() int {
	total := 0
	for _, msg := range c.Messages {
		total += msg.EstimateTokens()
	}
	return total
}

// Clone returns an independent copy of the conversation. The message
// slice is copied; the messages themselves are immutable and shared.
// Snapshot accessors hand out clones so readers never observe a
// concurrent mutation of Title, Active, or Model.
func (c *Conversation) Clone() *Conversation {
	dup := *c
	dup.Messages = make([]*Message, len(c.Messages))
	copy(dup.Messages, c.Messages)
	return &dup
}

// pruneOldMessages drops the oldest messages once the transcript exceeds
// MaxMessages. The window keeps the newest entries.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	excess := len(c.Messages) - MaxMessages
	c.Messages = c.Messages[excess:]
}

// generateConversationID creates a unique conversation ID.
func generateConversationID() string {
	return "conv_" + uuid.NewString()
}

// =============================================================================
// FOLDER TYPE
// =============================================================================

// Folder groups conversations in the sidebar. It is pure presentation
// metadata and has no effect on transcripts or routing.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Expanded bool   `json:"expanded"`
}

// NewFolder creates a folder with a generated ID, expanded by default.
func NewFolder(name string) *Folder {
	return &Folder{
		ID:       "folder_" + uuid.NewString(),
		Name:     name,
		Expanded: true,
	}
}

// Clone returns an independent copy of the folder.
func (f *Folder) Clone() *Folder {
	dup := *f
	return &dup
}

// DefaultFolder returns the folder every fresh session starts with.
func DefaultFolder() *Folder {
	return NewFolder("My Chats")
}
