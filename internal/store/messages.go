// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the normalized client-side state collections.
package store

import (
	"sync"

	"github.com/jeranaias/mumble-tui/internal/model"
)

// =============================================================================
// MESSAGES STORE
// =============================================================================

// Messages is the local chat message log. Messages are keyed by their
// locally generated id; the server-assigned id is attached on
// confirmation and used only when talking back to the backend.
type Messages struct {
	mu       sync.RWMutex
	messages []model.ChatMessage
}

// NewMessages creates an empty message store.
func NewMessages() *Messages {
	return &Messages{}
}

// Append adds a message to the end of the log.
func (s *Messages) Append(m model.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// RemoveByLocalID deletes the first message with the given local id.
// At most one entry is removed; an unknown id is a no-op and returns
// false. This is a local view operation only — nothing is sent to the
// backend.
func (s *Messages) RemoveByLocalID(localID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].LocalID == localID {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return true
		}
	}
	return false
}

// ReconcileServerID attaches the server-assigned id to the message
// with the given local id. Returns false when the local id is unknown.
func (s *Messages) ReconcileServerID(localID string, serverID uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].LocalID == localID {
			id := serverID
			s.messages[i].ServerID = &id
			return true
		}
	}
	return false
}

// Get returns a snapshot of the message with the given local id.
func (s *Messages) Get(localID string) (model.ChatMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.messages {
		if s.messages[i].LocalID == localID {
			return s.messages[i], true
		}
	}
	return model.ChatMessage{}, false
}

// All returns a snapshot of the log in insertion order.
func (s *Messages) All() []model.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages.
func (s *Messages) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Clear empties the log. Purely local.
func (s *Messages) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// Reset is Clear under the store-wide reset contract.
func (s *Messages) Reset() {
	s.Clear()
}
