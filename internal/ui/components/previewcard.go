// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mumble-tui/internal/preview"
	"github.com/jeranaias/mumble-tui/internal/ui/styles"
	"github.com/jeranaias/mumble-tui/internal/util"
)

// RenderPreviewCard renders fetched link metadata as a compact card
// under the message that carried the link. Placeholder results render
// nothing; the link itself is already visible in the message.
func RenderPreviewCard(res preview.Result, width int) string {
	if !res.OK {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true).
		Render(util.TruncateWidth(res.Title, width-4)))
	if res.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextSecondary).
			Render(util.TruncateWidth(res.Description, width-4)))
	}
	b.WriteString("\n")
	b.WriteString(styles.RenderLink(util.TruncateWidth(res.URL, width-4)))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(styles.Overlay).
		PaddingLeft(1).
		MaxWidth(width).
		Render(b.String())
}
