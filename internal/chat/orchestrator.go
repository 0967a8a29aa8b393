// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat coalesces user input, the text pipeline, the message
// store and the backend send command into single operations.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/store"
	"github.com/jeranaias/mumble-tui/internal/textpipe"
)

// ErrUnconfirmedMessage is returned when an operation needs the
// server-assigned id of a message the backend has not confirmed yet.
var ErrUnconfirmedMessage = errors.New("message has no server id yet")

// =============================================================================
// BACKEND SENDER
// =============================================================================

// Sender is the slice of the backend command surface the orchestrator
// needs. Exactly one of channelID or receiver is set per send.
type Sender interface {
	SendMessage(ctx context.Context, message string, channelID, receiver *uint32) error
	LikeMessage(ctx context.Context, messageID uint32) error
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator owns the send path.
type Orchestrator struct {
	pipe     *textpipe.Pipeline
	messages *store.Messages
	backend  Sender
	log      zerolog.Logger
}

// New creates an orchestrator.
func New(pipe *textpipe.Pipeline, messages *store.Messages, backend Sender, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		pipe:     pipe,
		messages: messages,
		backend:  backend,
		log:      log,
	}
}

// SendChatMessage transforms the text and sends it to the current
// user's channel, appending an optimistic local echo. Empty input
// (after trimming) is a no-op.
//
// The send command and the echo are deliberately not transactional:
// the echo is appended even when the send errors, and the error is
// returned for the view to surface.
func (o *Orchestrator) SendChatMessage(ctx context.Context, text string, currentUser model.User) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	rendered, err := o.pipe.Outbound(text)
	if err != nil {
		return err
	}

	channelID := currentUser.ChannelID
	sendErr := o.backend.SendMessage(ctx, rendered, &channelID, nil)
	if sendErr != nil {
		o.log.Warn().Err(sendErr).Uint32("channel_id", channelID).
			Msg("send_message command failed")
	}

	echo := model.NewChatMessage(currentUser.Snapshot(), rendered).WithChannel(channelID)
	o.messages.Append(echo)

	return sendErr
}

// SendPrivateMessage transforms the text and sends it to one
// recipient. No local echo: the backend's event delivery is the source
// of truth for private messages.
func (o *Orchestrator) SendPrivateMessage(ctx context.Context, text string, recipientID uint32) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	rendered, err := o.pipe.Outbound(text)
	if err != nil {
		return err
	}

	return o.backend.SendMessage(ctx, rendered, nil, &recipientID)
}

// DeleteMessage hides one message locally, addressed by its local id.
func (o *Orchestrator) DeleteMessage(localID string) bool {
	return o.messages.RemoveByLocalID(localID)
}

// DeleteMessages clears the entire local message log. Purely a view
// action; nothing is sent to the backend.
func (o *Orchestrator) DeleteMessages() {
	o.messages.Clear()
}

// LikeMessage invokes the backend like command for a message. The
// message must have been confirmed (server id attached) first.
func (o *Orchestrator) LikeMessage(ctx context.Context, localID string) error {
	msg, ok := o.messages.Get(localID)
	if !ok {
		return errors.New("unknown message")
	}
	if !msg.Confirmed() {
		return ErrUnconfirmedMessage
	}
	return o.backend.LikeMessage(ctx, *msg.ServerID)
}
