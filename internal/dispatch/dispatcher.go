// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch translates backend events into store operations.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/store"
	"github.com/jeranaias/mumble-tui/internal/textpipe"
)

// ErrMalformedEvent marks a recognized tag whose payload could not be
// decoded. The event is dropped; nothing is partially applied.
var ErrMalformedEvent = errors.New("malformed backend event")

// =============================================================================
// DISPATCHER
// =============================================================================

// LogoutNotifier tells the backend the client considers itself logged
// out. Invoked when the backend reports a lost connection.
type LogoutNotifier func(ctx context.Context)

// Dispatcher applies backend events to the entity stores.
type Dispatcher struct {
	store  *store.Store
	pipe   *textpipe.Pipeline
	logout LogoutNotifier
	resets []func()
	log    zerolog.Logger
}

// New creates a dispatcher. logout may be nil when there is no backend
// to notify (tests).
func New(st *store.Store, pipe *textpipe.Pipeline, logout LogoutNotifier, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		store:  st,
		pipe:   pipe,
		logout: logout,
		log:    log,
	}
}

// OnReset registers fn to run whenever a disconnect clears local
// state. Session-scoped caches outside the store (the event feed)
// hook in here so a logout leaves nothing from the old session.
func (d *Dispatcher) OnReset(fn func()) {
	d.resets = append(d.resets, fn)
}

// Run consumes events until the channel closes or the context ends.
// Events are applied strictly in arrival order, one at a time.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := d.Dispatch(ctx, ev); err != nil {
				d.log.Warn().Err(err).Str("message_type", ev.MessageType).
					Msg("dropping backend event")
			}
		}
	}
}

// Dispatch applies exactly one event. Unknown tags are ignored;
// malformed payloads for known tags return ErrMalformedEvent and leave
// state untouched.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	switch ev.MessageType {
	case TypeConnected:
		d.store.Server.SetConnected(true)
		return nil

	case TypeDisconnected, TypePingTimeout:
		return d.handleDisconnect(ctx)

	case TypeTextMessage:
		return d.handleTextMessage(ev.Data)

	case TypeUserImage:
		return d.handleUserImage(ev.Data)

	case TypeUserComment:
		return d.handleUserComment(ev.Data)

	case TypeUserUpdate:
		return d.handleUserUpdate(ev.Data)

	case TypeUserRemove:
		return d.handleUserRemove(ev.Data)

	case TypeChannelUpdate:
		return d.handleChannelUpdate(ev.Data)

	case TypeChannelDescription:
		return d.handleChannelDescription(ev.Data)

	case TypeCurrentUserID:
		return d.handleCurrentUserID(ev.Data)

	case TypeAudioInfo:
		return d.handleAudioInfo(ev.Data)

	case TypeSyncInfo:
		return d.handleSyncInfo(ev.Data)

	default:
		// Forward compatibility: the backend may grow new event kinds.
		d.log.Debug().Str("message_type", ev.MessageType).
			Msg("ignoring unrecognized backend event")
		return nil
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

// handleDisconnect clears all local state and tells the backend the
// client logged out.
func (d *Dispatcher) handleDisconnect(ctx context.Context) error {
	d.store.Reset()
	for _, fn := range d.resets {
		fn()
	}
	if d.logout != nil {
		d.logout(ctx)
	}
	return nil
}

// handleTextMessage runs the inbound pipeline and appends the message.
// When the payload carries a server id and an unconfirmed local echo
// with the same actor and body exists, the echo is reconciled instead
// of appending a duplicate.
func (d *Dispatcher) handleTextMessage(data json.RawMessage) error {
	var payload textMessageData
	if err := decode(data, &payload); err != nil {
		return err
	}

	rendered, _, err := d.pipe.Inbound(payload.Message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if payload.ID != nil {
		if localID, ok := d.findUnconfirmedEcho(payload.Actor, rendered); ok {
			d.store.Messages.ReconcileServerID(localID, *payload.ID)
			return nil
		}
	}

	msg := model.NewChatMessage(payload.Sender, rendered)
	msg.Actor = payload.Actor
	msg.ServerID = payload.ID
	msg.ChannelIDs = payload.ChannelIDs
	msg.TreeIDs = payload.TreeIDs
	if payload.Timestamp > 0 {
		msg.Timestamp = time.UnixMilli(payload.Timestamp)
	}

	d.store.Messages.Append(msg)
	return nil
}

// findUnconfirmedEcho locates the oldest optimistic echo matching the
// confirmed message.
func (d *Dispatcher) findUnconfirmedEcho(actor uint32, rendered string) (string, bool) {
	for _, m := range d.store.Messages.All() {
		if !m.Confirmed() && m.Actor == actor && m.Message == rendered {
			return m.LocalID, true
		}
	}
	return "", false
}

func (d *Dispatcher) handleUserImage(data json.RawMessage) error {
	var payload userFieldData
	if err := decode(data, &payload); err != nil {
		return err
	}
	if !d.store.Users.SetProfilePicture(payload.UserID, payload.Image) {
		d.log.Debug().Uint32("user_id", payload.UserID).
			Msg("user_image for unknown user")
	}
	return nil
}

func (d *Dispatcher) handleUserComment(data json.RawMessage) error {
	var payload userFieldData
	if err := decode(data, &payload); err != nil {
		return err
	}
	if !d.store.Users.SetComment(payload.UserID, payload.Comment) {
		d.log.Debug().Uint32("user_id", payload.UserID).
			Msg("user_comment for unknown user")
	}
	return nil
}

func (d *Dispatcher) handleUserUpdate(data json.RawMessage) error {
	var u model.User
	if err := decode(data, &u); err != nil {
		return err
	}
	d.store.Users.Upsert(u)
	return nil
}

func (d *Dispatcher) handleUserRemove(data json.RawMessage) error {
	var payload userRemoveData
	if err := decode(data, &payload); err != nil {
		return err
	}
	d.store.Users.Remove(payload.ID)
	return nil
}

func (d *Dispatcher) handleChannelUpdate(data json.RawMessage) error {
	var c model.Channel
	if err := decode(data, &c); err != nil {
		return err
	}
	d.store.Channels.Upsert(c)
	return nil
}

func (d *Dispatcher) handleChannelDescription(data json.RawMessage) error {
	var payload channelDescriptionData
	if err := decode(data, &payload); err != nil {
		return err
	}
	if !d.store.Channels.UpdateDescription(payload.ChannelID, payload.Description) {
		d.log.Debug().Uint32("channel_id", payload.ChannelID).
			Msg("channel_description for unknown channel")
	}
	return nil
}

func (d *Dispatcher) handleCurrentUserID(data json.RawMessage) error {
	var id uint32
	if err := decode(data, &id); err != nil {
		return err
	}
	if !d.store.Users.SetCurrentID(id) {
		d.log.Warn().Uint32("user_id", id).
			Msg("current_user_id does not resolve to a known user")
	}
	return nil
}

func (d *Dispatcher) handleAudioInfo(data json.RawMessage) error {
	var payload audioInfoData
	if err := decode(data, &payload); err != nil {
		return err
	}
	d.store.Users.SetTalking(payload.UserID, payload.Talking)
	return nil
}

// handleSyncInfo applies the composite sync payload: resolve the
// current-user marker when a session id is present, then merge the
// server metadata fields that are present. The welcome text passes
// through the sanitizer before it is stored for rendering.
func (d *Dispatcher) handleSyncInfo(data json.RawMessage) error {
	var sync model.ServerSync
	if err := decode(data, &sync); err != nil {
		return err
	}

	if sync.SessionID != nil {
		if !d.store.Users.SetCurrentID(*sync.SessionID) {
			d.log.Warn().Uint32("session_id", *sync.SessionID).
				Msg("sync_info session does not resolve to a known user")
		}
	}

	if sync.WelcomeText != nil {
		clean := d.pipe.Sanitize(*sync.WelcomeText)
		sync.WelcomeText = &clean
	}

	d.store.Server.Patch(sync)
	return nil
}

// decode unmarshals a payload, wrapping failures as ErrMalformedEvent.
func decode(data json.RawMessage, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	return nil
}
