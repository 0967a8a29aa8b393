// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/textpipe"
	"github.com/jeranaias/mumble-tui/internal/ui/styles"
)

// RenderMessage renders one chat message as terminal text: sender
// line, then body with links underlined and images replaced by
// placeholders. Unconfirmed messages are dimmed until the server
// echoes them back.
func RenderMessage(msg model.ChatMessage, width int) string {
	var b strings.Builder

	sender := msg.Sender.UserName
	if sender == "" {
		sender = "<unknown>"
	}
	header := styles.Sender.Render(sender) + " " +
		styles.Timestamp.Render(msg.Timestamp.Format("15:04:05"))
	if !msg.Confirmed() {
		header += " " + styles.PendingMessage.Render(styles.IndicatorPending)
	}
	b.WriteString(header)
	b.WriteString("\n")

	body := renderBody(msg.Message)
	if !msg.Confirmed() {
		body = styles.PendingMessage.Render(body)
	}
	b.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(body))

	return b.String()
}

// renderBody flattens the stored HTML into terminal text using the
// message node tree. On parse failure the raw text is shown untouched
// rather than dropping the message.
func renderBody(rendered string) string {
	nodes, err := textpipe.Nodes(rendered)
	if err != nil {
		return strings.TrimSpace(rendered)
	}

	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case textpipe.NodeText:
			b.WriteString(html.UnescapeString(n.Text))
		case textpipe.NodeLink:
			label := n.Label
			if label == "" {
				label = n.Href
			}
			b.WriteString(styles.RenderLink(label))
		case textpipe.NodeImage:
			b.WriteString(styles.ImagePlaceholder.Render("[image: " + n.Src + "]"))
		}
	}
	return strings.TrimSpace(b.String())
}
