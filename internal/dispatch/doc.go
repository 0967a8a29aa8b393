// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch translates backend events into store operations.
//
// The dispatcher is the single ingress point for state coming from the
// native backend. Every event is a tagged payload
// {message_type, data}; the dispatch table maps each known tag to
// exactly one store operation (or one composite, for sync_info).
// Events are processed synchronously in arrival order — the backend's
// delivery order is the system's consistency order.
//
// # Forward Compatibility
//
// Dispatch is total over the known tag set and ignores unrecognized
// tags instead of failing: the backend may introduce new event kinds
// at any time. A recognized tag with a malformed payload is dropped
// and logged — this layer has no feedback channel to the backend for
// malformed events.
package dispatch
