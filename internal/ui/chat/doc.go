// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main Bubble Tea program for the client: a
// connect form, the channel sidebar, the message viewport, the
// mute/deafen event feed, and the message input.
//
// Backend events flow through the model's Update loop: a command waits
// on the bridge's event channel, each received event is applied
// through the dispatcher, and the views re-render from the stores.
// Everything the views show lives in the stores; this package holds
// only UI state (focus, scroll position, toggles).
//
// # Key Types
//
//   - Model: the Bubble Tea model for the whole client
//   - Deps: the wired application services the model runs against
//
// # Usage
//
//	m := chat.NewModel(deps)
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package chat
