// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat coalesces user input, the text pipeline, the message
// store and the backend send command into single operations.
package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/store"
	"github.com/jeranaias/mumble-tui/internal/textpipe"
)

// fakeSender records backend command invocations.
type fakeSender struct {
	sends []sendCall
	likes []uint32
	err   error
}

type sendCall struct {
	message   string
	channelID *uint32
	receiver  *uint32
}

func (f *fakeSender) SendMessage(_ context.Context, message string, channelID, receiver *uint32) error {
	f.sends = append(f.sends, sendCall{message: message, channelID: channelID, receiver: receiver})
	return f.err
}

func (f *fakeSender) LikeMessage(_ context.Context, messageID uint32) error {
	f.likes = append(f.likes, messageID)
	return f.err
}

func newOrchestrator(backend *fakeSender) (*Orchestrator, *store.Messages) {
	messages := store.NewMessages()
	o := New(textpipe.New(), messages, backend, zerolog.Nop())
	return o, messages
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSendChatMessage(t *testing.T) {
	backend := &fakeSender{}
	o, messages := newOrchestrator(backend)

	user := model.User{ID: 1, Name: "A", ChannelID: 7}
	if err := o.SendChatMessage(context.Background(), "hello", user); err != nil {
		t.Fatalf("SendChatMessage: %v", err)
	}

	// Exactly one outbound command, targeting channel 7.
	if len(backend.sends) != 1 {
		t.Fatalf("got %d send commands, want 1", len(backend.sends))
	}
	call := backend.sends[0]
	if call.channelID == nil || *call.channelID != 7 {
		t.Errorf("channel target = %v, want 7", call.channelID)
	}
	if call.receiver != nil {
		t.Error("channel send must not carry a receiver target")
	}
	if !strings.Contains(call.message, "hello") {
		t.Errorf("transformed text = %q", call.message)
	}

	// Exactly one local echo from the sender's snapshot.
	msgs := messages.All()
	if len(msgs) != 1 {
		t.Fatalf("got %d local messages, want 1", len(msgs))
	}
	echo := msgs[0]
	if echo.Sender.UserID != 1 || echo.Sender.UserName != "A" {
		t.Errorf("echo sender = %+v", echo.Sender)
	}
	if echo.Message != call.message {
		t.Error("echo text differs from the sent text")
	}
	if echo.Confirmed() {
		t.Error("echo must start unconfirmed")
	}
	if echo.Timestamp.IsZero() {
		t.Error("echo missing local timestamp")
	}
	if len(echo.ChannelIDs) != 1 || echo.ChannelIDs[0] != 7 {
		t.Errorf("echo targets = %v", echo.ChannelIDs)
	}
}

func TestSendChatMessage_EmptyAfterTrimIsNoOp(t *testing.T) {
	backend := &fakeSender{}
	o, messages := newOrchestrator(backend)

	for _, text := range []string{"", "   ", "\n\t"} {
		if err := o.SendChatMessage(context.Background(), text, model.User{ID: 1}); err != nil {
			t.Fatalf("SendChatMessage(%q): %v", text, err)
		}
	}

	if len(backend.sends) != 0 || messages.Len() != 0 {
		t.Error("empty input produced effects")
	}
}

func TestSendChatMessage_EchoSurvivesSendFailure(t *testing.T) {
	backend := &fakeSender{err: errors.New("backend down")}
	o, messages := newOrchestrator(backend)

	err := o.SendChatMessage(context.Background(), "hi", model.User{ID: 1, ChannelID: 2})
	if err == nil {
		t.Fatal("send failure not surfaced")
	}
	// The two effects are not transactional; the echo still appears.
	if messages.Len() != 1 {
		t.Errorf("echo missing after send failure, len = %d", messages.Len())
	}
}

func TestSendPrivateMessage_NoEcho(t *testing.T) {
	backend := &fakeSender{}
	o, messages := newOrchestrator(backend)

	if err := o.SendPrivateMessage(context.Background(), "psst", 42); err != nil {
		t.Fatalf("SendPrivateMessage: %v", err)
	}

	if len(backend.sends) != 1 {
		t.Fatalf("got %d send commands, want 1", len(backend.sends))
	}
	call := backend.sends[0]
	if call.receiver == nil || *call.receiver != 42 {
		t.Errorf("receiver target = %v, want 42", call.receiver)
	}
	if call.channelID != nil {
		t.Error("private send must not carry a channel target")
	}

	// Intentional asymmetry: no optimistic echo for private messages.
	if messages.Len() != 0 {
		t.Errorf("private send produced %d local messages", messages.Len())
	}
}

// =============================================================================
// LOCAL OPERATIONS TESTS
// =============================================================================

func TestDeleteMessages_ClearsLocallyOnly(t *testing.T) {
	backend := &fakeSender{}
	o, messages := newOrchestrator(backend)

	o.SendChatMessage(context.Background(), "one", model.User{ID: 1, ChannelID: 1})
	o.SendChatMessage(context.Background(), "two", model.User{ID: 1, ChannelID: 1})
	sendsBefore := len(backend.sends)

	o.DeleteMessages()

	if messages.Len() != 0 {
		t.Error("log not cleared")
	}
	if len(backend.sends) != sendsBefore || len(backend.likes) != 0 {
		t.Error("clear leaked a backend command")
	}
}

func TestLikeMessage(t *testing.T) {
	backend := &fakeSender{}
	o, messages := newOrchestrator(backend)

	o.SendChatMessage(context.Background(), "likeable", model.User{ID: 1, ChannelID: 1})
	localID := messages.All()[0].LocalID

	// Unconfirmed: the backend has not assigned an id yet.
	if err := o.LikeMessage(context.Background(), localID); !errors.Is(err, ErrUnconfirmedMessage) {
		t.Errorf("err = %v, want ErrUnconfirmedMessage", err)
	}

	messages.ReconcileServerID(localID, 314)
	if err := o.LikeMessage(context.Background(), localID); err != nil {
		t.Fatalf("LikeMessage: %v", err)
	}
	if len(backend.likes) != 1 || backend.likes[0] != 314 {
		t.Errorf("likes = %v, want [314]", backend.likes)
	}
}
