// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, channels and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER SNAPSHOT TYPE
// =============================================================================

// SenderSnapshot is a denormalized copy of the sender's identity taken
// at message creation time. It is intentionally decoupled from the live
// User entry so historical messages render correctly after the sender
// disconnects.
type SenderSnapshot struct {
	UserID   uint32 `json:"user_id"`
	UserName string `json:"user_name"`
}

// =============================================================================
// CHAT MESSAGE TYPE
// =============================================================================

// ChatMessage represents a single chat message, either received from
// the backend or synthesized locally as an optimistic echo.
type ChatMessage struct {
	// LocalID is the locally generated unique identity assigned at
	// creation time. All local lookups (delete, like) key on it.
	LocalID string `json:"local_id"`

	// ServerID is the server-assigned message id, attached once the
	// backend confirms the message. Nil until reconciled.
	ServerID *uint32 `json:"server_id,omitempty"`

	// Actor is the sender's session id.
	Actor uint32 `json:"actor"`

	// Sender is the denormalized sender identity.
	Sender SenderSnapshot `json:"sender"`

	// Recipient lists. A message may fan out to multiple channels
	// and/or channel subtrees.
	ChannelIDs []uint32 `json:"channel_id"`
	TreeIDs    []uint32 `json:"tree_id"`

	// Message is the sanitized HTML (or plain text) body.
	Message string `json:"message"`

	// Timestamp is the client-assigned send time for locally authored
	// messages, or the server time for received ones.
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessage creates a message with a generated local ID and the
// current local time.
func NewChatMessage(sender SenderSnapshot, body string) ChatMessage {
	return ChatMessage{
		LocalID:   uuid.NewString(),
		Actor:     sender.UserID,
		Sender:    sender,
		Message:   body,
		Timestamp: time.Now(),
	}
}

// WithChannel returns a copy of the message targeted at one channel.
func (m ChatMessage) WithChannel(channelID uint32) ChatMessage {
	m.ChannelIDs = append([]uint32(nil), channelID)
	return m
}

// Confirmed reports whether the backend has assigned a server id to
// this message.
func (m ChatMessage) Confirmed() bool {
	return m.ServerID != nil
}
