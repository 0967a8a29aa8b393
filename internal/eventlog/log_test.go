// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package eventlog derives human-readable log entries from user state
// transitions.
package eventlog

import (
	"strings"
	"testing"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/store"
)

func attachNewLog(t *testing.T) (*Log, *store.Users) {
	t.Helper()
	users := store.NewUsers()
	log := New()
	log.Attach(users)
	return log, users
}

func TestLog_SelfMuteTransitionAppendsOneEntry(t *testing.T) {
	log, users := attachNewLog(t)

	users.Upsert(model.User{ID: 1, Name: "alice", SelfMute: false})
	users.Upsert(model.User{ID: 1, Name: "alice", SelfMute: true})

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Kind != model.EventSelfMute {
		t.Errorf("Kind = %q", entries[0].Kind)
	}
	if !strings.Contains(entries[0].Message, "muted") {
		t.Errorf("Message = %q, want to mention muted", entries[0].Message)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("entry has no timestamp")
	}
}

func TestLog_IdempotentPayloadAppendsNothing(t *testing.T) {
	log, users := attachNewLog(t)

	users.Upsert(model.User{ID: 1, Name: "alice", SelfMute: true})

	// Same payload again: no prior-state change, no new entry.
	users.Upsert(model.User{ID: 1, Name: "alice", SelfMute: true})
	users.Upsert(model.User{ID: 1, Name: "alice", SelfMute: true})

	if log.Len() != 0 {
		// The first upsert is an insert (no prior state) and logs
		// nothing; the repeats change nothing.
		t.Errorf("got %d entries, want 0", log.Len())
	}
}

func TestLog_MuteAndDeafInOneUpdate(t *testing.T) {
	log, users := attachNewLog(t)

	users.Upsert(model.User{ID: 2, Name: "bob"})
	users.Upsert(model.User{ID: 2, Name: "bob", SelfMute: true, SelfDeaf: true})

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (one per flag)", len(entries))
	}
	if entries[0].Kind != model.EventSelfMute || entries[1].Kind != model.EventSelfDeaf {
		t.Errorf("kinds = %q, %q", entries[0].Kind, entries[1].Kind)
	}
	if !strings.Contains(entries[1].Message, "deafened") {
		t.Errorf("deaf message = %q", entries[1].Message)
	}
}

func TestLog_UnmuteLogsToo(t *testing.T) {
	log, users := attachNewLog(t)

	users.Upsert(model.User{ID: 3, Name: "carol", SelfMute: true})
	users.Upsert(model.User{ID: 3, Name: "carol", SelfMute: false})

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !strings.Contains(entries[0].Message, "unmuted") {
		t.Errorf("Message = %q", entries[0].Message)
	}
}

func TestLog_UserRemovalLogsNothing(t *testing.T) {
	log, users := attachNewLog(t)

	users.Upsert(model.User{ID: 4, Name: "dave", SelfMute: true})
	users.Remove(4)

	if log.Len() != 0 {
		t.Errorf("removal produced %d entries, want 0", log.Len())
	}
}

func TestLog_RetentionCap(t *testing.T) {
	users := store.NewUsers()
	log := New()
	log.max = 5
	log.Attach(users)

	users.Upsert(model.User{ID: 1, Name: "alice"})
	for i := 0; i < 20; i++ {
		users.Upsert(model.User{ID: 1, Name: "alice", SelfMute: i%2 == 0})
	}

	if log.Len() != 5 {
		t.Errorf("retained %d entries, want 5", log.Len())
	}
}
