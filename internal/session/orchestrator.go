// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/atomine/atomine-tui/internal/api"
	"github.com/atomine/atomine-tui/internal/model"
	"github.com/atomine/atomine-tui/internal/router"
	"github.com/atomine/atomine-tui/internal/store"
)

// Error variables for input rejection.
var (
	// ErrEmptyInput indicates a blank message was absorbed without effect.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy indicates a send arrived while a turn was already in flight.
	ErrBusy = errors.New("a message is already being processed")
)

// User-facing failure strings. Transport detail goes to the log, not the
// transcript.
const (
	chatFailedMessage  = "Failed to get a response. Please try again."
	imageFailedMessage = "Failed to generate image. Please try again."
)

// =============================================================================
// IMAGE GENERATION STATE
// =============================================================================

// ImageGenState is the lifecycle of the most recent image generation task.
// Loading and Result/Error are mutually exclusive: loading drops before
// either outcome is visible.
type ImageGenState struct {
	Prompt  string
	Loading bool
	Result  string
	Error   string
	Backend model.ImageBackend
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Chatter is the outbound surface the orchestrator needs. *api.Client
// satisfies it; tests substitute their own.
type Chatter interface {
	ChatStream(ctx context.Context, path string, req api.ChatRequest, onPartial api.PartialFunc) (string, error)
	GenerateImage(ctx context.Context, path, prompt string) (string, error)
	AnalyzeImage(ctx context.Context, path, imageURL string) (string, error)
}

// Orchestrator owns all session state and the send pipeline. All methods
// are safe for concurrent use; Send blocks for the duration of the turn
// and is expected to run in its own goroutine.
type Orchestrator struct {
	mu sync.Mutex

	store  *store.Store
	client Chatter

	prefs         model.Preferences
	contextMemory []api.ChatMessage

	// Turn state
	busy      bool
	streaming string
	lastError string
	imageGen  ImageGenState
}

// New creates an orchestrator over the given store and client.
func New(s *store.Store, client Chatter) *Orchestrator {
	return &Orchestrator{
		store:  s,
		client: client,
		prefs:  model.DefaultPreferences(),
		imageGen: ImageGenState{
			Backend: model.BackendDallE,
		},
	}
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

// Send runs one full user turn: classify, route, call, record. It returns
// ErrEmptyInput for blank text and ErrBusy while another turn is in
// flight; both leave every piece of state untouched. Transport failures
// are absorbed into LastError or the image state, never returned raw.
func (o *Orchestrator) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return ErrBusy
	}
	o.busy = true
	o.lastError = ""
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.busy = false
		o.streaming = ""
		o.mu.Unlock()
	}()

	switch router.Classify(text) {
	case router.IntentImageGeneration:
		o.store.RetitleOnFirstMessage(text)
		o.store.Append(model.NewUserMessage(text))
		o.generateImage(ctx, text)
		return nil

	case router.IntentImageAnalysis:
		processed := o.analyzeImage(ctx, text)
		o.chat(ctx, text, processed)
		return nil

	default:
		o.chat(ctx, text, text)
		return nil
	}
}

// analyzeImage describes the linked image via the vision integration.
// On failure the raw input is returned so the turn degrades to a normal
// chat message instead of dying.
func (o *Orchestrator) analyzeImage(ctx context.Context, text string) string {
	ep := router.ResolveAnalysis()
	analysis, err := o.client.AnalyzeImage(ctx, ep.Path, text)
	if err != nil {
		log.Printf("image analysis failed, falling back to raw input: %v", err)
		return text
	}
	return analysis
}

// chat runs the streaming chat pipeline. raw is what the user typed and
// becomes the title source; processed is what enters the transcript and
// the outbound messages array.
func (o *Orchestrator) chat(ctx context.Context, raw, processed string) {
	o.mu.Lock()
	inferred := router.InferModel(processed, contextSummary(o.contextMemory), o.activeModelLocked())
	backend := o.imageGen.Backend
	params := o.paramsLocked()
	o.contextMemory = append(o.contextMemory, api.ChatMessage{Role: model.RoleUser.String(), Content: processed})
	o.mu.Unlock()

	o.store.SetActiveModel(inferred)
	o.store.RetitleOnFirstMessage(raw)
	o.store.Append(model.NewUserMessage(processed))

	req := api.ChatRequest{
		Messages:   transcriptMessages(o.store.Transcript()),
		Stream:     true,
		Parameters: params,
	}

	ep := router.Resolve(inferred, backend)

	final, err := o.client.ChatStream(ctx, ep.Path, req, func(cumulative string) {
		o.mu.Lock()
		o.streaming = cumulative
		o.mu.Unlock()
	})
	if err != nil {
		// Partial content is discarded: the transcript only ever holds
		// completed turns.
		log.Printf("chat stream failed: %v", err)
		o.mu.Lock()
		o.lastError = chatFailedMessage
		o.streaming = ""
		o.mu.Unlock()
		return
	}

	o.store.Append(model.NewAssistantMessage(final))
	o.mu.Lock()
	o.contextMemory = append(o.contextMemory, api.ChatMessage{Role: model.RoleAssistant.String(), Content: final})
	o.streaming = ""
	o.mu.Unlock()
}

// generateImage runs the image generation task. Loading is guaranteed to
// drop on every exit path before the outcome becomes visible.
func (o *Orchestrator) generateImage(ctx context.Context, prompt string) {
	o.mu.Lock()
	o.imageGen.Prompt = prompt
	o.imageGen.Loading = true
	o.imageGen.Error = ""
	backend := o.imageGen.Backend
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.imageGen.Loading = false
		o.mu.Unlock()
	}()

	ep := router.Resolve(model.ModelImageGen, backend)
	url, err := o.client.GenerateImage(ctx, ep.Path, prompt)
	if err != nil {
		log.Printf("image generation failed: %v", err)
		o.mu.Lock()
		o.imageGen.Error = imageFailedMessage
		o.mu.Unlock()
		return
	}

	o.mu.Lock()
	o.imageGen.Result = url
	o.mu.Unlock()
	o.store.Append(model.NewImageMessage(url))
}

// =============================================================================
// CONVERSATION COMMANDS
// =============================================================================

// NewChat starts a fresh conversation and makes it active.
func (o *Orchestrator) NewChat() string {
	return o.store.Create()
}

// SwitchConversation activates the identified conversation. Unknown IDs
// are silent no-ops.
func (o *Orchestrator) SwitchConversation(id string) {
	o.store.Switch(id)
}

// DeleteConversation removes the identified conversation; the store keeps
// its never-empty and single-active guarantees.
func (o *Orchestrator) DeleteConversation(id string) {
	o.store.Delete(id)
}

// SetActiveModel changes the model selection for the active conversation.
func (o *Orchestrator) SetActiveModel(id model.ModelID) {
	o.store.SetActiveModel(id)
}

// SetImageBackend selects the image generation service.
func (o *Orchestrator) SetImageBackend(b model.ImageBackend) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if b.IsValid() {
		o.imageGen.Backend = b
	}
}

// SetResponseMode selects the deliberation mode for future turns.
func (o *Orchestrator) SetResponseMode(m model.ResponseMode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if m.IsValid() {
		o.prefs.Mode = m
	}
}

// SetPreferences replaces the response-shaping preferences.
func (o *Orchestrator) SetPreferences(p model.Preferences) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prefs = p
}

// AddFolder creates a sidebar folder.
func (o *Orchestrator) AddFolder(name string) string {
	return o.store.AddFolder(name)
}

// ToggleFolder flips a folder's expanded state.
func (o *Orchestrator) ToggleFolder(id string) {
	o.store.ToggleFolder(id)
}

// =============================================================================
// READ-ONLY PROJECTIONS
// =============================================================================

// Busy reports whether a turn is in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Streaming returns the partial assistant text of the in-flight turn, or
// empty when nothing is streaming.
func (o *Orchestrator) Streaming() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.streaming
}

// LastError returns the user-facing error of the most recent failed turn,
// cleared at the start of the next send.
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

// ImageGeneration returns a copy of the image generation state.
func (o *Orchestrator) ImageGeneration() ImageGenState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.imageGen
}

// Preferences returns the current response-shaping preferences.
func (o *Orchestrator) Preferences() model.Preferences {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.prefs
}

// Transcript returns the active conversation's messages.
func (o *Orchestrator) Transcript() []*model.Message {
	return o.store.Transcript()
}

// ActiveConversation returns a copy of the active conversation.
func (o *Orchestrator) ActiveConversation() *model.Conversation {
	return o.store.Active()
}

// Conversations returns the conversation list for the sidebar.
func (o *Orchestrator) Conversations() []*model.Conversation {
	return o.store.Conversations()
}

// Folders returns the sidebar folders.
func (o *Orchestrator) Folders() []*model.Folder {
	return o.store.Folders()
}

// ActiveModel returns the active conversation's model selection.
func (o *Orchestrator) ActiveModel() model.ModelID {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeModelLocked()
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// activeModelLocked reads the active conversation's model. Caller holds
// the orchestrator mutex; the store takes its own lock.
func (o *Orchestrator) activeModelLocked() model.ModelID {
	return o.store.ActiveModel()
}

// paramsLocked builds outbound request parameters from the preferences.
// Caller holds the mutex.
func (o *Orchestrator) paramsLocked() api.Parameters {
	return api.Parameters{
		Temperature:    o.prefs.Creativity,
		ResponseFormat: o.prefs.WritingStyle,
		MaxTokens:      api.TokenLimit(o.prefs.ResponseLength),
	}
}

// transcriptMessages projects a transcript into the outbound messages
// array.
func transcriptMessages(msgs []*model.Message) []api.ChatMessage {
	out := make([]api.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, api.ChatMessage{Role: m.Role.String(), Content: m.Content})
	}
	return out
}

// contextSummary flattens the rolling context list for model inference.
func contextSummary(memory []api.ChatMessage) string {
	var b strings.Builder
	for _, m := range memory {
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	return b.String()
}
