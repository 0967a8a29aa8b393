// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bridge connects the frontend to the native backend process.
//
// The backend owns the Mumble protocol, audio and crypto; the frontend
// talks to it over a local WebSocket carrying JSON frames in both
// directions:
//
//   - backend -> frontend: events {message_type, data}, consumed by
//     the dispatcher
//   - frontend -> backend: named commands with a structured argument
//     record; a command may carry a call id when the caller awaits a
//     result (connect attempts)
//
// A single reader goroutine feeds the event channel and routes call
// results to their waiters, so an outstanding awaited command never
// blocks event ingestion.
package bridge
