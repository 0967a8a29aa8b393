// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, channels and messages.
//
// This package defines the core domain types mirrored from the native
// backend's state: connected users, the channel tree, chat messages and
// the server singleton. The entity stores in internal/store own the
// canonical copies; everything here is a plain value that can be copied
// freely.
//
// # Key Types
//
//   - User: a connected session with voice-state flags
//   - Channel: a channel with its raw comment and derived image
//   - ChatMessage: a chat message with local and server identity
//   - ServerState: connection singleton (bandwidth, welcome text)
//   - EventLogEntry: immutable derived log entry for status changes
//
// # Message Identity
//
// Every ChatMessage gets a locally generated unique ID at creation
// time, independent of the server-assigned one. All local operations
// (delete, like) address messages by this local ID; the server ID is
// attached later when the backend confirms delivery.
package model
