// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat coalesces user input, the text pipeline, the message
// store and the backend send command into single operations.
//
// Sending a channel message produces two effects that both occur but
// are not transactional with each other: the send command to the
// backend, and an optimistic local echo appended to the message store.
// Private messages intentionally have no local echo — their delivery
// comes back through the backend's own event stream.
package chat
