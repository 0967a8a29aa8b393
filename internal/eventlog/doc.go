// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package eventlog derives human-readable log entries from user state
// transitions.
//
// The log is an observer registered on the user store: for every
// committed user update it diffs the self-mute and self-deafen flags
// between the before and after snapshots and appends one immutable
// entry per flag transition. Idempotent payloads (no flag change)
// append nothing, and user removal logs nothing.
//
// Entries are append-only and never coalesced. Retention is a bounded
// ring: once the cap is reached, the oldest entries are dropped.
package eventlog
