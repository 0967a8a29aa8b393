// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bridge connects the frontend to the native backend process.
package bridge

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// COMMAND SURFACE
// =============================================================================

// connectArgs is the argument record of connect_to_server.
type connectArgs struct {
	ServerHost string `json:"server_host"`
	ServerPort uint16 `json:"server_port"`
	Username   string `json:"username"`
}

// sendMessageArgs is the argument record of send_message. Exactly one
// of ChannelID or Receiver is set.
type sendMessageArgs struct {
	ChatMessage string  `json:"chat_message"`
	ChannelID   *uint32 `json:"channel_id,omitempty"`
	Receiver    *uint32 `json:"reciever,omitempty"`
}

// UserStatePatch is a partial user state, by id. Nil fields are not
// part of the request.
type UserStatePatch struct {
	UserID   uint32 `json:"user_id"`
	SelfMute *bool  `json:"self_mute,omitempty"`
	SelfDeaf *bool  `json:"self_deaf,omitempty"`
}

// likeMessageArgs is the argument record of like_message.
type likeMessageArgs struct {
	MessageID uint32 `json:"message_id"`
}

// ConnectToServer asks the backend to establish the Mumble connection.
// The result is awaited; on failure the returned error carries the
// backend's user-displayable message.
func (b *Bridge) ConnectToServer(ctx context.Context, host string, port uint16, username string) error {
	res, err := b.invoke(ctx, "connect_to_server", connectArgs{
		ServerHost: host,
		ServerPort: port,
		Username:   username,
	})
	if err != nil {
		return err
	}
	if !res.ok {
		return fmt.Errorf("connection failed: %s", res.message)
	}
	return nil
}

// Logout tells the backend to drop the Mumble connection.
// Fire-and-forget.
func (b *Bridge) Logout(ctx context.Context) error {
	return b.send(ctx, "logout", nil)
}

// SendMessage sends a chat message to exactly one target: a channel or
// a direct recipient. Fire-and-forget.
func (b *Bridge) SendMessage(ctx context.Context, message string, channelID, receiver *uint32) error {
	if (channelID == nil) == (receiver == nil) {
		return errors.New("send_message requires exactly one of channel or receiver")
	}
	return b.send(ctx, "send_message", sendMessageArgs{
		ChatMessage: message,
		ChannelID:   channelID,
		Receiver:    receiver,
	})
}

// ChangeUserState pushes a partial user state change (self mute/deaf).
// Fire-and-forget.
func (b *Bridge) ChangeUserState(ctx context.Context, patch UserStatePatch) error {
	return b.send(ctx, "change_user_state", patch)
}

// LikeMessage likes a confirmed message by its server id.
// Fire-and-forget.
func (b *Bridge) LikeMessage(ctx context.Context, messageID uint32) error {
	return b.send(ctx, "like_message", likeMessageArgs{MessageID: messageID})
}
