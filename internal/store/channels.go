// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the normalized client-side state collections.
package store

import (
	"sync"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/textpipe"
)

// =============================================================================
// CHANNELS STORE
// =============================================================================

// Channels is the normalized channel collection.
type Channels struct {
	mu        sync.RWMutex
	channels  []model.Channel
	sanitizer textpipe.Sanitizer
}

// NewChannels creates an empty channel store. The sanitizer is applied
// to raw descriptions before anything is extracted from them.
func NewChannels(sanitizer textpipe.Sanitizer) *Channels {
	return &Channels{sanitizer: sanitizer}
}

// Upsert inserts the channel or replaces the existing entry with the
// same id. On replace, Comment and ChannelImage are carried over:
// description content only ever arrives through UpdateDescription.
func (s *Channels) Upsert(c model.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(c.ChannelID)
	if idx < 0 {
		s.channels = append(s.channels, c)
		return
	}

	prev := s.channels[idx]
	c.Comment = prev.Comment
	c.ChannelImage = prev.ChannelImage
	s.channels[idx] = c
}

// Remove deletes the channel with the given id. Removing an absent id
// is a no-op and returns false.
func (s *Channels) Remove(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.channels = append(s.channels[:idx], s.channels[idx+1:]...)
	return true
}

// UpdateDescription stores the raw description and recomputes the
// derived channel image: the raw value is kept as the comment, a
// sanitized copy is parsed, and the src of the last <img> (trimmed)
// becomes the channel image. A description without images leaves the
// previous image untouched — the payload carries no explicit clear.
//
// Sanitization always happens before extraction; image URLs are never
// derived from raw attacker-controlled HTML.
func (s *Channels) UpdateDescription(id uint32, rawHTML string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	s.channels[idx].Comment = rawHTML

	clean := s.sanitizer.Sanitize(rawHTML)
	if src, ok := textpipe.LastImageSource(clean); ok {
		s.channels[idx].ChannelImage = src
	}
	return true
}

// Get returns a snapshot of the channel with the given id.
func (s *Channels) Get(id uint32) (model.Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Channel{}, false
	}
	return s.channels[idx], true
}

// All returns a snapshot of the collection in insertion order.
func (s *Channels) All() []model.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

// Len returns the number of channels.
func (s *Channels) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.channels)
}

// Reset drops all channels.
func (s *Channels) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = nil
}

// indexOf returns the index of the channel with the given id, or -1.
// Callers must hold the lock.
func (s *Channels) indexOf(id uint32) int {
	for i := range s.channels {
		if s.channels[i].ChannelID == id {
			return i
		}
	}
	return -1
}
