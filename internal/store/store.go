// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the normalized client-side state collections.
package store

import (
	"github.com/jeranaias/mumble-tui/internal/textpipe"
)

// =============================================================================
// STORE AGGREGATE
// =============================================================================

// Store bundles the entity stores. The dispatcher and the chat
// orchestrator write to it; everything else reads snapshots.
type Store struct {
	Users    *Users
	Channels *Channels
	Messages *Messages
	Server   *Server
}

// New creates the full store set. The sanitizer is the one shared with
// the text pipelines, so channel descriptions and message bodies pass
// through the same allow-list.
func New(sanitizer textpipe.Sanitizer) *Store {
	return &Store{
		Users:    NewUsers(),
		Channels: NewChannels(sanitizer),
		Messages: NewMessages(),
		Server:   NewServer(),
	}
}

// Reset clears every collection. Called by the top-level coordinator
// on logout and on connection loss; there is no hidden reset path
// threaded through dispatch.
func (s *Store) Reset() {
	s.Users.Reset()
	s.Channels.Reset()
	s.Messages.Reset()
	s.Server.Reset()
}
