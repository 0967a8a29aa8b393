// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the normalized client-side state collections.
//
// The stores own the canonical copies of users, channels, chat
// messages and the server singleton. Every read returns a snapshot
// value; every write goes through a defined operation — callers never
// mutate a retrieved entity in place.
//
// # Key Types
//
//   - Users: user collection with observer notifications
//   - Channels: channel collection with derived image handling
//   - Messages: chat message log keyed by local message identity
//   - Server: connection state singleton with partial merge
//   - Store: aggregate with a single Reset for logout
//
// # Identity and Merge Rules
//
// Collections keep insertion order; upserts match by identity field
// and replace in place, preserving protected sub-fields that arrive
// through dedicated partial updates (user comment and profile picture,
// channel comment and derived image). Removal of an absent id is a
// no-op, never an unchecked splice.
package store
