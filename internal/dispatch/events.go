// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch translates backend events into store operations.
package dispatch

import (
	"encoding/json"

	"github.com/jeranaias/mumble-tui/internal/model"
)

// =============================================================================
// EVENT TYPE
// =============================================================================

// Event is one tagged payload pushed by the backend.
type Event struct {
	MessageType string          `json:"message_type"`
	Data        json.RawMessage `json:"data"`
}

// Known message_type tags. The backend may send tags outside this set;
// those are ignored.
const (
	TypeConnected          = "connected"
	TypeDisconnected       = "disconnected"
	TypePingTimeout        = "ping_timeout"
	TypeTextMessage        = "text_message"
	TypeUserImage          = "user_image"
	TypeUserComment        = "user_comment"
	TypeUserUpdate         = "user_update"
	TypeUserRemove         = "user_remove"
	TypeChannelUpdate      = "channel_update"
	TypeChannelDescription = "channel_description"
	TypeCurrentUserID      = "current_user_id"
	TypeAudioInfo          = "audio_info"
	TypeSyncInfo           = "sync_info"
)

// =============================================================================
// PAYLOAD SHAPES
// =============================================================================

// textMessageData is the payload of a text_message event. The optional
// server id, when present, reconciles an unconfirmed local echo.
type textMessageData struct {
	ID         *uint32              `json:"id,omitempty"`
	Actor      uint32               `json:"actor"`
	Sender     model.SenderSnapshot `json:"sender"`
	ChannelIDs []uint32             `json:"channel_id"`
	TreeIDs    []uint32             `json:"tree_id"`
	Message    string               `json:"message"`
	Timestamp  int64                `json:"timestamp"` // unix milliseconds
}

// userFieldData is the payload of the user_comment and user_image
// partial updates.
type userFieldData struct {
	UserID  uint32 `json:"user_id"`
	Comment string `json:"comment,omitempty"`
	Image   string `json:"image,omitempty"`
}

// userRemoveData is the payload of a user_remove event.
type userRemoveData struct {
	ID uint32 `json:"id"`
}

// channelDescriptionData is the payload of a channel_description event.
type channelDescriptionData struct {
	ChannelID   uint32 `json:"channel_id"`
	Description string `json:"description"`
}

// audioInfoData is the payload of an audio_info event. Only ephemeral
// flags; never anything persisted.
type audioInfoData struct {
	UserID  uint32 `json:"user_id"`
	Talking bool   `json:"talking"`
}
