// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/ui/styles"
)

// RenderEventFeed renders the newest event log entries, most recent
// last, limited to max lines.
func RenderEventFeed(entries []model.EventLogEntry, max int) string {
	if max <= 0 || len(entries) == 0 {
		return ""
	}
	if len(entries) > max {
		entries = entries[len(entries)-max:]
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.Timestamp.Render(e.FormattedTime()))
		b.WriteString(" ")
		b.WriteString(styles.EventEntry.Render(e.Message))
	}
	return b.String()
}
