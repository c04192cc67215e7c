// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// The package has no behavior of its own beyond construction and small
// accessors. Messages are immutable once created; streaming accumulation
// happens in the api package and only the finished text becomes a Message.
//
// # Key Types
//
//   - Message: a single user or assistant turn, text or image
//   - Conversation: an identified transcript with title and model selection
//   - Folder: sidebar grouping metadata for conversations
//   - ModelID: the closed set of assistant model identifiers
//   - Preferences: response-shaping knobs carried into chat requests
package model
