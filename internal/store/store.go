// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store keeps the in-memory conversation set for a session.
//
// The store owns every transcript and the active-conversation pointer.
// Collaborators read through snapshot accessors and mutate only through
// the operations here, under a single mutex, so readers always observe a
// consistent state.
//
// Invariants maintained by every operation:
//   - the conversation set is never empty
//   - whenever the set is non-empty, exactly one conversation is active
package store

import (
	"sync"

	"github.com/atomine/atomine-tui/internal/model"
	"github.com/atomine/atomine-tui/internal/util"
)

// =============================================================================
// STORE TYPE
// =============================================================================

// Store is the mutex-guarded conversation set.
type Store struct {
	mu            sync.Mutex
	conversations []*model.Conversation
	folders       []*model.Folder
	defaultModel  model.ModelID
}

// New creates a store seeded with one active conversation and the default
// folder, matching the state a fresh session shows.
func New(defaultModel model.ModelID) *Store {
	defaultModel = model.Normalize(defaultModel)

	first := model.NewConversation(defaultModel)
	first.Active = true

	return &Store{
		conversations: []*model.Conversation{first},
		folders:       []*model.Folder{model.DefaultFolder()},
		defaultModel:  defaultModel,
	}
}

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// Create adds a new conversation with the default title and model and makes
// it the single active one. Existing conversations and transcripts are
// untouched. Returns the new conversation's ID.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := model.NewConversation(s.defaultModel)
	conv.Active = true
	for _, c := range s.conversations {
		c.Active = false
	}
	s.conversations = append(s.conversations, conv)
	return conv.ID
}

// Switch makes the identified conversation active. An unknown ID is a
// silent no-op: the current active conversation keeps its state.
func (s *Store) Switch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findLocked(id)
	if target == nil {
		return
	}
	for _, c := range s.conversations {
		c.Active = c == target
	}
}

// Delete removes the identified conversation. Deleting the active one
// promotes the last remaining conversation to active; deleting the last
// conversation synthesizes a fresh default one, so the set never empties
// and the single-active invariant holds on every exit path. Unknown IDs
// are silent no-ops.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.conversations {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	wasActive := s.conversations[idx].Active
	s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)

	if len(s.conversations) == 0 {
		fresh := model.NewConversation(s.defaultModel)
		fresh.Active = true
		s.conversations = []*model.Conversation{fresh}
		return
	}

	if wasActive {
		s.conversations[len(s.conversations)-1].Active = true
	}
}

// Append adds a message to the active conversation's transcript.
func (s *Store) Append(msg *model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if active := s.activeLocked(); active != nil {
		active.AddMessage(msg)
	}
}

// RetitleOnFirstMessage titles the active conversation with the first
// thirty characters of text, but only while its transcript is still empty.
// Later calls are no-ops, so the title always reflects the opening message.
// The caller passes the raw user input, which may differ from the message
// ultimately appended (image analysis replaces the content).
func (s *Store) RetitleOnFirstMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.activeLocked()
	if active == nil || !active.IsEmpty() {
		return
	}
	active.Title = util.TruncateRunesNoEllipsis(text, model.TitleRuneLimit)
}

// SetActiveModel changes the model selection of the active conversation.
// Unknown identifiers are normalized to the primary model.
func (s *Store) SetActiveModel(id model.ModelID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if active := s.activeLocked(); active != nil {
		active.Model = model.Normalize(id)
	}
}

// =============================================================================
// SNAPSHOT ACCESSORS
// =============================================================================

// Active returns a copy of the active conversation, or nil when the set
// is somehow empty (which the operations above never allow). Copies keep
// readers off the live structs the operations mutate under the lock.
func (s *Store) Active() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.activeLocked()
	if active == nil {
		return nil
	}
	return active.Clone()
}

// ActiveModel returns the active conversation's model selection.
func (s *Store) ActiveModel() model.ModelID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if active := s.activeLocked(); active != nil {
		return active.Model
	}
	return s.defaultModel
}

// ActiveID returns the active conversation's ID.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if active := s.activeLocked(); active != nil {
		return active.ID
	}
	return ""
}

// Transcript returns the active conversation's messages as a copied slice.
// Messages themselves are immutable once appended.
func (s *Store) Transcript() []*model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.activeLocked()
	if active == nil {
		return nil
	}
	out := make([]*model.Message, len(active.Messages))
	copy(out, active.Messages)
	return out
}

// Conversations returns a copy of the conversation list, newest last,
// for sidebar rendering. Each element is a clone, so the snapshot stays
// stable while operations keep mutating the originals.
func (s *Store) Conversations() []*model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = c.Clone()
	}
	return out
}

// Count returns the number of conversations.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// =============================================================================
// FOLDER OPERATIONS
// =============================================================================

// Folders returns a copy of the folder list. Elements are clones for the
// same reason as Conversations.
func (s *Store) Folders() []*model.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Folder, len(s.folders))
	for i, f := range s.folders {
		out[i] = f.Clone()
	}
	return out
}

// AddFolder creates a sidebar folder and returns its ID.
func (s *Store) AddFolder(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := model.NewFolder(name)
	s.folders = append(s.folders, f)
	return f.ID
}

// ToggleFolder flips a folder's expanded state. Unknown IDs are silent
// no-ops.
func (s *Store) ToggleFolder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.folders {
		if f.ID == id {
			f.Expanded = !f.Expanded
			return
		}
	}
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// activeLocked returns the active conversation. Caller holds the mutex.
func (s *Store) activeLocked() *model.Conversation {
	for _, c := range s.conversations {
		if c.Active {
			return c
		}
	}
	return nil
}

// findLocked returns the conversation with the given ID. Caller holds the
// mutex.
func (s *Store) findLocked(id string) *model.Conversation {
	for _, c := range s.conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}
