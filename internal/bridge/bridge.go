// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bridge connects the frontend to the native backend process.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/mumble-tui/internal/dispatch"
)

// ErrClosed is returned for commands issued after the bridge shut down.
var ErrClosed = errors.New("bridge closed")

// =============================================================================
// WIRE FRAMES
// =============================================================================

// commandFrame is one frontend -> backend command invocation.
type commandFrame struct {
	Command string `json:"command"`
	Args    any    `json:"args,omitempty"`

	// CallID is set when the caller awaits a result.
	CallID string `json:"call_id,omitempty"`
}

// inboundFrame is one backend -> frontend frame: either an event
// (MessageType set) or a call result (CallID set).
type inboundFrame struct {
	MessageType string          `json:"message_type,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`

	CallID string `json:"call_id,omitempty"`
	OK     bool   `json:"ok,omitempty"`
	Error  string `json:"error,omitempty"`
}

// callResult resolves one awaited command.
type callResult struct {
	ok      bool
	message string
}

// =============================================================================
// BRIDGE
// =============================================================================

// Bridge is a connected backend transport.
type Bridge struct {
	conn   *websocket.Conn
	events chan dispatch.Event
	log    zerolog.Logger

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan callResult

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the backend's bridge endpoint and starts the reader.
func Dial(ctx context.Context, addr string, log zerolog.Logger) (*Bridge, error) {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend at %s: %w", addr, err)
	}

	b := &Bridge{
		conn:    conn,
		events:  make(chan dispatch.Event, 64),
		pending: make(map[string]chan callResult),
		done:    make(chan struct{}),
		log:     log,
	}

	go b.readLoop(context.Background())
	return b, nil
}

// Events returns the backend event stream. The channel closes when the
// bridge shuts down.
func (b *Bridge) Events() <-chan dispatch.Event {
	return b.events
}

// Close tears the connection down.
func (b *Bridge) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.done)
		err = b.conn.Close(websocket.StatusNormalClosure, "bye")
	})
	return err
}

// readLoop feeds events and routes call results until the connection
// drops.
func (b *Bridge) readLoop(ctx context.Context) {
	defer close(b.events)

	for {
		var frame inboundFrame
		if err := wsjson.Read(ctx, b.conn, &frame); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				select {
				case <-b.done:
				default:
					b.log.Warn().Err(err).Msg("backend connection lost")
				}
			}
			b.failPending()
			return
		}

		switch {
		case frame.CallID != "":
			b.resolve(frame.CallID, callResult{ok: frame.OK, message: frame.Error})
		case frame.MessageType != "":
			select {
			case b.events <- dispatch.Event{MessageType: frame.MessageType, Data: frame.Data}:
			case <-b.done:
				return
			}
		default:
			b.log.Debug().Msg("discarding frame with neither event nor call id")
		}
	}
}

// =============================================================================
// COMMAND PLUMBING
// =============================================================================

// send writes one fire-and-forget command.
func (b *Bridge) send(ctx context.Context, command string, args any) error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	if err := wsjson.Write(ctx, b.conn, commandFrame{Command: command, Args: args}); err != nil {
		return fmt.Errorf("failed to send %s: %w", command, err)
	}
	return nil
}

// invoke writes one command and awaits its result. The reader routes
// the result here; events keep flowing while we wait.
func (b *Bridge) invoke(ctx context.Context, command string, args any) (callResult, error) {
	callID := uuid.NewString()
	resultCh := make(chan callResult, 1)

	b.pendingMu.Lock()
	b.pending[callID] = resultCh
	b.pendingMu.Unlock()
	defer func() {
		b.pendingMu.Lock()
		delete(b.pending, callID)
		b.pendingMu.Unlock()
	}()

	b.writeMu.Lock()
	err := wsjson.Write(ctx, b.conn, commandFrame{Command: command, Args: args, CallID: callID})
	b.writeMu.Unlock()
	if err != nil {
		return callResult{}, fmt.Errorf("failed to send %s: %w", command, err)
	}

	select {
	case res := <-resultCh:
		return res, nil
	case <-ctx.Done():
		return callResult{}, ctx.Err()
	case <-b.done:
		return callResult{}, ErrClosed
	}
}

// resolve delivers a call result to its waiter, if any.
func (b *Bridge) resolve(callID string, res callResult) {
	b.pendingMu.Lock()
	ch, ok := b.pending[callID]
	b.pendingMu.Unlock()
	if !ok {
		b.log.Debug().Str("call_id", callID).Msg("result for unknown call")
		return
	}
	ch <- res
}

// failPending unblocks every waiter after the connection dropped.
func (b *Bridge) failPending() {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	for id, ch := range b.pending {
		ch <- callResult{ok: false, message: "connection to backend lost"}
		delete(b.pending, id)
	}
}
