// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, channels and messages.
package model

import "time"

// =============================================================================
// EVENT LOG ENTRY TYPE
// =============================================================================

// EventKind classifies a derived event log entry.
type EventKind string

const (
	// EventSelfMute covers self-mute / self-unmute transitions.
	EventSelfMute EventKind = "self_mute"
	// EventSelfDeaf covers self-deafen / self-undeafen transitions.
	EventSelfDeaf EventKind = "self_deaf"
)

// EventLogEntry is a derived, append-only log entry describing a user
// status change. Entries are never mutated, coalesced or deduplicated
// after creation.
type EventLogEntry struct {
	Kind      EventKind `json:"event"`
	Message   string    `json:"log_message"`
	Timestamp time.Time `json:"timestamp"`
}

// FormattedTime returns the entry timestamp formatted for display.
func (e EventLogEntry) FormattedTime() string {
	return e.Timestamp.Format("15:04:05")
}
