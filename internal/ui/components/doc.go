// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable rendering pieces for the TUI:
// the channel sidebar, chat message blocks, the mute/deafen event
// feed, and syntax-highlighted code blocks.
//
// Components are pure render functions over domain types. They hold no
// state of their own; the chat model owns state and calls into this
// package from its View.
package components
