// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package eventlog derives human-readable log entries from user state
// transitions.
package eventlog

import (
	"sync"
	"time"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/store"
)

// MaxEntries bounds the log. The backend never prunes status events,
// so the client caps retention itself; 1000 entries comfortably covers
// a long session without growing without bound.
const MaxEntries = 1000

// =============================================================================
// EVENT LOG
// =============================================================================

// Log collects derived status-change entries.
type Log struct {
	mu      sync.RWMutex
	entries []model.EventLogEntry
	max     int
	now     func() time.Time
}

// New creates an empty log with the default retention cap.
func New() *Log {
	return &Log{max: MaxEntries, now: time.Now}
}

// Attach registers the log as an observer on the user store.
func (l *Log) Attach(users *store.Users) {
	users.Observe(l.onUserChange)
}

// onUserChange diffs the self-state flags of a committed transition.
// Inserts (no prior state) and removals (no new state) produce no
// entries; removal logging is an intentional gap.
func (l *Log) onUserChange(c store.UserChange) {
	if c.Before == nil || c.After == nil {
		return
	}

	if c.Before.SelfMute != c.After.SelfMute {
		l.append(model.EventSelfMute, muteMessage(*c.After))
	}
	if c.Before.SelfDeaf != c.After.SelfDeaf {
		l.append(model.EventSelfDeaf, deafMessage(*c.After))
	}
}

// append adds one immutable entry, dropping the oldest beyond the cap.
func (l *Log) append(kind model.EventKind, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, model.EventLogEntry{
		Kind:      kind,
		Message:   message,
		Timestamp: l.now(),
	})
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Entries returns a snapshot of the log, oldest first.
func (l *Log) Entries() []model.EventLogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.EventLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Reset drops all entries.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// =============================================================================
// MESSAGE FORMATTING
// =============================================================================

// Outcome text is locale-invariant; translation happens in the view
// layer, if anywhere.

func muteMessage(u model.User) string {
	if u.SelfMute {
		return u.DisplayName() + " muted themselves"
	}
	return u.DisplayName() + " unmuted themselves"
}

func deafMessage(u model.User) string {
	if u.SelfDeaf {
		return u.DisplayName() + " deafened themselves"
	}
	return u.DisplayName() + " undeafened themselves"
}
