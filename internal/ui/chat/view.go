// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mumble-tui/internal/textpipe"
	"github.com/jeranaias/mumble-tui/internal/ui/components"
	"github.com/jeranaias/mumble-tui/internal/ui/styles"
)

// View renders the whole client for the current phase.
func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	switch m.phase {
	case phaseConnect, phaseConnecting:
		return m.connectView()
	default:
		return m.chatView()
	}
}

// =============================================================================
// CONNECT FORM
// =============================================================================

func (m Model) connectView() string {
	var b strings.Builder

	b.WriteString(styles.Header.Render("mumble-tui"))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Server", "Port", "Username"}
	for i, field := range m.fields {
		label := lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(10).Render(labels[i])
		box := styles.InputBox
		if i == m.focused {
			box = styles.InputBoxFocused
		}
		b.WriteString(label + box.Render(field.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.phase == phaseConnecting {
		b.WriteString(styles.Timestamp.Render("Connecting..."))
	} else {
		b.WriteString(styles.HelpBar.Render("Tab: next field    Enter: connect    F1: help    C-c: quit"))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.RenderError(m.errMsg))
	}

	return b.String()
}

// =============================================================================
// CHAT LAYOUT
// =============================================================================

func (m Model) chatView() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.headerView()
	sidebar := styles.Sidebar.
		Width(sidebarWidth).
		Height(m.viewport.Height).
		Render(components.RenderSidebar(
			m.deps.Store.Channels.All(),
			m.deps.Store.Users.All(),
			m.currentUserID(),
			sidebarWidth-2,
		))

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.viewport.View())

	var sections []string
	sections = append(sections, header, main)

	if m.showEvents {
		if feed := components.RenderEventFeed(m.deps.Events.Entries(), 3); feed != "" {
			sections = append(sections, feed)
		}
	}

	inputBox := styles.InputBoxFocused.Width(m.viewport.Width).Render(m.input.View())
	sections = append(sections, inputBox)

	if m.preview {
		if preview := m.previewView(); preview != "" {
			sections = append(sections, preview)
		}
	}

	helpBar := styles.HelpBar.Render("Enter: send    F2: mute    F3: deafen    C-e: events    F1: help")
	if m.errMsg != "" {
		helpBar = styles.RenderError(m.errMsg)
	}
	sections = append(sections, helpBar)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	state := m.deps.Store.Server.State()

	status := styles.StatusDisconnected.Render("disconnected")
	if state.Connected {
		status = styles.StatusConnected.Render("connected")
	}

	var self string
	if found, muted, deafened := m.currentUser(); found {
		if muted {
			self += " " + styles.MutedMarker.Render(styles.IndicatorMuted)
		}
		if deafened {
			self += " " + styles.MutedMarker.Render(styles.IndicatorDeaf)
		}
	}

	return styles.Header.Render("mumble-tui  " + status + self)
}

func (m Model) currentUserID() *uint32 {
	u, ok := m.deps.Store.Users.Current()
	if !ok {
		return nil
	}
	id := u.ID
	return &id
}

// refreshViewport rebuilds the viewport content from the message
// store and follows the tail when the user was already at the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	atBottom := m.viewport.AtBottom()

	msgs := m.deps.Store.Messages.All()
	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		block := components.RenderMessage(msg, m.viewport.Width)
		if url, ok := firstLinkURL(msg.Message); ok {
			if res, have := m.previews[url]; have {
				if card := components.RenderPreviewCard(res, m.viewport.Width); card != "" {
					block += "\n" + card
				}
			}
		}
		blocks = append(blocks, block)
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))

	if atBottom {
		m.viewport.GotoBottom()
	}
}

// firstLinkURL extracts the first link target from a rendered message.
func firstLinkURL(rendered string) (string, bool) {
	nodes, err := textpipe.Nodes(rendered)
	if err != nil {
		return "", false
	}
	for _, n := range nodes {
		if n.Kind == textpipe.NodeLink && n.Href != "" {
			return n.Href, true
		}
	}
	return "", false
}

// previewView renders the input as it will look once sent, with
// fenced code highlighted.
func (m Model) previewView() string {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return styles.InputBox.Width(m.viewport.Width).
		Render(components.ParseCodeBlocks(text, m.viewport.Width-4))
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

const helpMarkdown = `# mumble-tui

## Connecting

| Key | Action |
|-----|--------|
| Tab | Next field |
| Enter | Connect |

## Chat

| Key | Action |
|-----|--------|
| Enter | Send message |
| C-p | Toggle message preview |
| C-l | Clear messages |
| C-e | Toggle event feed |
| F2 | Toggle self mute |
| F3 | Toggle self deafen |
| PgUp / PgDn | Scroll history |
| C-c | Quit |

Messages support Markdown. The first URL in a message becomes a link,
and ` + "`@dice` / `@coin`" + ` at the start of a message roll for you.

Press any key to close this help.`

func (m Model) helpView() string {
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	rendered, err := glamour.Render(helpMarkdown, "dark")
	if err != nil {
		return helpMarkdown
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(rendered)
}
