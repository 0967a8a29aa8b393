// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sort"
	"strings"

	"github.com/jeranaias/mumble-tui/internal/model"
	"github.com/jeranaias/mumble-tui/internal/ui/styles"
	"github.com/jeranaias/mumble-tui/internal/util"
)

// RenderSidebar renders the channel tree with users grouped under
// their channels. The current user is highlighted, talking users get a
// marker, and mute/deafen state shows as flags after the name.
func RenderSidebar(channels []model.Channel, users []model.User, currentID *uint32, width int) string {
	byChannel := make(map[uint32][]model.User)
	for _, u := range users {
		byChannel[u.ChannelID] = append(byChannel[u.ChannelID], u)
	}
	for _, members := range byChannel {
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	}

	sorted := make([]model.Channel, len(channels))
	copy(sorted, channels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ChannelID < sorted[j].ChannelID })

	var b strings.Builder
	for _, ch := range sorted {
		name := ch.Name
		if name == "" {
			name = "Root"
		}
		b.WriteString(styles.ChannelName.Render(util.TruncateWidth(name, width)))
		b.WriteString("\n")

		for _, u := range byChannel[ch.ChannelID] {
			b.WriteString("  ")
			b.WriteString(renderUser(u, currentID, width-2))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderUser(u model.User, currentID *uint32, width int) string {
	name := util.TruncateWidth(u.DisplayName(), width)

	style := styles.UserName
	switch {
	case currentID != nil && *currentID == u.ID:
		style = styles.CurrentUser
	case u.Talking:
		style = styles.TalkingUser
	}

	line := style.Render(name)
	if u.Talking {
		line += " " + styles.TalkingUser.Render(styles.IndicatorTalking)
	}
	if flags := userFlags(u); flags != "" {
		line += " " + styles.MutedMarker.Render(flags)
	}
	return line
}

func userFlags(u model.User) string {
	var flags []string
	if u.Mute || u.SelfMute {
		flags = append(flags, styles.IndicatorMuted)
	}
	if u.Deaf || u.SelfDeaf {
		flags = append(flags, styles.IndicatorDeaf)
	}
	return strings.Join(flags, "")
}
