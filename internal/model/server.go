// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, channels and messages.
package model

// =============================================================================
// SERVER STATE TYPE
// =============================================================================

// ServerState is the singleton describing the current connection.
// It is mutated only by full or partial sync payloads from the backend;
// absent fields in a partial sync are left untouched.
type ServerState struct {
	Connected    bool   `json:"connected"`
	MaxBandwidth uint32 `json:"max_bandwidth"`

	// WelcomeText is the server welcome message, sanitized before it
	// is stored here.
	WelcomeText string `json:"welcome_text"`

	Permissions uint64 `json:"permissions"`
}

// ServerSync is a partial update to ServerState. Nil fields mean
// "not present in the payload, keep the current value".
type ServerSync struct {
	SessionID    *uint32 `json:"session_id,omitempty"`
	MaxBandwidth *uint32 `json:"max_bandwidth,omitempty"`
	WelcomeText  *string `json:"welcome_text,omitempty"`
	Permissions  *uint64 `json:"permissions,omitempty"`
}
