// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// COMPONENT STYLES
// =============================================================================

// Header is the top status bar.
var Header = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Background(Surface).
	Bold(true).
	Padding(0, 1)

// Sidebar frames the channel and user tree.
var Sidebar = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderRight(true).
	BorderForeground(Overlay).
	Padding(0, 1)

// ChannelName styles channel entries in the sidebar.
var ChannelName = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

// UserName styles user entries in the sidebar.
var UserName = lipgloss.NewStyle().Foreground(TextPrimary)

// CurrentUser marks the user this client is connected as.
var CurrentUser = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

// TalkingUser marks users currently transmitting.
var TalkingUser = lipgloss.NewStyle().Foreground(Emerald)

// MutedMarker styles the mute/deafen flags next to a user.
var MutedMarker = lipgloss.NewStyle().Foreground(Amber)

// Sender styles the sender name above a chat message.
var Sender = lipgloss.NewStyle().Foreground(Purple).Bold(true)

// Timestamp styles message and event timestamps.
var Timestamp = lipgloss.NewStyle().Foreground(TextMuted)

// PendingMessage dims messages not yet confirmed by the server.
var PendingMessage = lipgloss.NewStyle().Foreground(TextMuted)

// EventEntry styles mute/deafen feed lines.
var EventEntry = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

// InputBox frames the message input at the bottom.
var InputBox = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)

// InputBoxFocused highlights the input when it has focus.
var InputBoxFocused = InputBox.BorderForeground(Cyan)

// StatusConnected and StatusDisconnected color the connection state.
var StatusConnected = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
var StatusDisconnected = lipgloss.NewStyle().Foreground(Rose).Bold(true)

// HelpBar styles the key hint line at the bottom.
var HelpBar = lipgloss.NewStyle().Foreground(TextMuted)

// ImagePlaceholder stands in for inline images the terminal cannot show.
var ImagePlaceholder = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
