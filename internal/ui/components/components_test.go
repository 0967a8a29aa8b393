// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/mumble-tui/internal/model"
)

func TestRenderMessageBody(t *testing.T) {
	msg := model.NewChatMessage(model.SenderSnapshot{UserID: 1, UserName: "alice"},
		`<p>see <a href="https://example.com">example</a> and <img src="https://example.com/x.png"></p>`)

	out := RenderMessage(msg, 80)
	if !strings.Contains(out, "alice") {
		t.Error("rendered message missing sender name")
	}
	if !strings.Contains(out, "example") {
		t.Error("rendered message missing link label")
	}
	if !strings.Contains(out, "[image: https://example.com/x.png]") {
		t.Error("rendered message missing image placeholder")
	}
}

func TestRenderMessagePendingMarker(t *testing.T) {
	msg := model.NewChatMessage(model.SenderSnapshot{UserID: 1, UserName: "alice"}, "<p>hi</p>")

	if out := RenderMessage(msg, 80); !strings.Contains(out, "[ ]") {
		t.Error("unconfirmed message missing pending marker")
	}

	server := uint32(42)
	msg.ServerID = &server
	if out := RenderMessage(msg, 80); strings.Contains(out, "[ ]") {
		t.Error("confirmed message still shows pending marker")
	}
}

func TestRenderMessageMalformedHTMLFallsBack(t *testing.T) {
	msg := model.NewChatMessage(model.SenderSnapshot{UserName: "bob"}, "plain text body")
	if out := RenderMessage(msg, 80); !strings.Contains(out, "plain text body") {
		t.Error("plain body not rendered")
	}
}

func TestRenderSidebarGroupsUsersByChannel(t *testing.T) {
	channels := []model.Channel{
		{ChannelID: 0, Name: "Root"},
		{ChannelID: 5, Name: "Gaming"},
	}
	users := []model.User{
		{ID: 1, Name: "alice", ChannelID: 5, Talking: true},
		{ID: 2, Name: "bob", ChannelID: 0, SelfMute: true},
	}
	current := uint32(1)

	out := RenderSidebar(channels, users, &current, 40)

	rootIdx := strings.Index(out, "Root")
	gamingIdx := strings.Index(out, "Gaming")
	aliceIdx := strings.Index(out, "alice")
	bobIdx := strings.Index(out, "bob")
	if rootIdx < 0 || gamingIdx < 0 || aliceIdx < 0 || bobIdx < 0 {
		t.Fatalf("sidebar missing entries:\n%s", out)
	}
	// bob sits under Root, alice under Gaming.
	if !(rootIdx < bobIdx && bobIdx < gamingIdx && gamingIdx < aliceIdx) {
		t.Errorf("sidebar ordering wrong:\n%s", out)
	}
	if !strings.Contains(out, "[*]") {
		t.Error("talking marker missing")
	}
	if !strings.Contains(out, "[m]") {
		t.Error("mute marker missing")
	}
}

func TestRenderEventFeedLimitsEntries(t *testing.T) {
	entries := []model.EventLogEntry{
		{Kind: model.EventSelfMute, Message: "alice muted themselves"},
		{Kind: model.EventSelfDeaf, Message: "alice deafened themselves"},
		{Kind: model.EventSelfMute, Message: "alice unmuted themselves"},
	}
	out := RenderEventFeed(entries, 2)
	if strings.Contains(out, "alice muted themselves") {
		t.Error("oldest entry should be dropped at max 2")
	}
	if !strings.Contains(out, "alice unmuted themselves") {
		t.Error("newest entry missing")
	}
}

func TestParseCodeBlocksLeavesProseAlone(t *testing.T) {
	text := "hello\nworld"
	if got := ParseCodeBlocks(text, 80); got != text {
		t.Errorf("ParseCodeBlocks() altered prose: %q", got)
	}
}

func TestParseCodeBlocksRendersFence(t *testing.T) {
	text := "before\n```go\nfmt.Println(1)\n```\nafter"
	got := ParseCodeBlocks(text, 80)
	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Error("surrounding prose lost")
	}
	if strings.Contains(got, "```") {
		t.Error("fence markers leaked into output")
	}
	if !strings.Contains(got, "go") {
		t.Error("language badge missing")
	}
}
