// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the normalized client-side state collections.
package store

import (
	"sync"

	"github.com/jeranaias/mumble-tui/internal/model"
)

// =============================================================================
// SERVER STORE
// =============================================================================

// Server holds the connection-state singleton. It is mutated only by
// full or partial sync payloads from the backend.
type Server struct {
	mu    sync.RWMutex
	state model.ServerState
}

// NewServer creates the server store in the disconnected state.
func NewServer() *Server {
	return &Server{}
}

// SetConnected flips the connected flag.
func (s *Server) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Connected = connected
}

// Patch merges the fields present in the sync payload. Absent fields
// are left untouched, never reset to defaults.
func (s *Server) Patch(sync model.ServerSync) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sync.MaxBandwidth != nil {
		s.state.MaxBandwidth = *sync.MaxBandwidth
	}
	if sync.WelcomeText != nil {
		s.state.WelcomeText = *sync.WelcomeText
	}
	if sync.Permissions != nil {
		s.state.Permissions = *sync.Permissions
	}
}

// State returns a snapshot of the server state.
func (s *Server) State() model.ServerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Reset returns the singleton to the zero, disconnected state.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = model.ServerState{}
}
