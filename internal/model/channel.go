// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, channels and messages.
package model

// =============================================================================
// CHANNEL TYPE
// =============================================================================

// Channel represents a channel in the server's channel tree.
type Channel struct {
	// Identity
	ChannelID uint32 `json:"channel_id"`

	// Attributes
	Name string `json:"name"`

	// Comment is the raw HTML channel description as delivered by the
	// backend. Sanitize before rendering or extracting from it.
	Comment string `json:"comment"`

	// ChannelImage is derived from Comment: the src of the last <img>
	// element found in the sanitized description. Recomputed on every
	// description update; a description without images leaves the
	// previous value in place (the payload has no explicit clear).
	ChannelImage string `json:"channel_image"`
}

// DisplayName returns the channel name, or a placeholder for unnamed
// channels.
func (c Channel) DisplayName() string {
	if c.Name == "" {
		return "<unnamed>"
	}
	return c.Name
}
