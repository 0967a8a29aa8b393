// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, channels and messages.
package model

// =============================================================================
// USER TYPE
// =============================================================================

// User represents a connected session on the server.
//
// The ID is the server-assigned session id and is stable for the
// lifetime of the session. Comment and ProfilePicture arrive through
// dedicated partial updates and are large; a full user update from the
// backend does not carry them, so store operations must never let a
// full upsert erase them.
type User struct {
	// Identity
	ID uint32 `json:"id"`

	// Attributes
	Name      string `json:"name"`
	ChannelID uint32 `json:"channel_id"`

	// Comment is the raw user comment as delivered by the backend.
	// It may contain attacker-controlled HTML and must be sanitized
	// before rendering or before extracting anything from it.
	Comment string `json:"comment"`

	// ProfilePicture is an opaque image reference (data URI or URL).
	// Updated independently of the other fields.
	ProfilePicture string `json:"profile_picture"`

	// Voice-state flags
	Mute            bool `json:"mute"`
	Deaf            bool `json:"deaf"`
	SelfMute        bool `json:"self_mute"`
	SelfDeaf        bool `json:"self_deaf"`
	Suppress        bool `json:"suppress"`
	PrioritySpeaker bool `json:"priority_speaker"`
	Recording       bool `json:"recording"`

	// Talking is ephemeral and updated at audio-frame rate.
	// Never persisted.
	Talking bool `json:"talking"`
}

// DisplayName returns the user's name, or a placeholder for sessions
// that have not announced one yet.
func (u User) DisplayName() string {
	if u.Name == "" {
		return "<unknown>"
	}
	return u.Name
}

// Snapshot returns the denormalized sender snapshot for this user.
// Chat messages carry this instead of a live reference so historical
// messages keep rendering after the sender leaves.
func (u User) Snapshot() SenderSnapshot {
	return SenderSnapshot{
		UserID:   u.ID,
		UserName: u.Name,
	}
}
