// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mumble-tui/internal/bridge"
	"github.com/jeranaias/mumble-tui/internal/config"
	"github.com/jeranaias/mumble-tui/internal/dispatch"
	"github.com/jeranaias/mumble-tui/internal/preview"
)

var errNotConnected = errors.New("not connected to a server")

// =============================================================================
// TEA MESSAGES
// =============================================================================

// backendEventMsg carries one event from the bridge into Update.
type backendEventMsg struct {
	event dispatch.Event
	ok    bool
}

// connectResultMsg reports the outcome of a connect call.
type connectResultMsg struct {
	err error
}

// sendResultMsg reports the outcome of sending a chat message.
type sendResultMsg struct {
	err error
}

// stateChangeResultMsg reports the outcome of a mute/deafen request.
type stateChangeResultMsg struct {
	err error
}

// ConfigReloadedMsg is sent from outside the program when the config
// file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// previewResultMsg carries fetched link metadata. The result echoes
// the URL it was requested for, so stale results route to the right
// message regardless of arrival order.
type previewResultMsg struct {
	result preview.Result
}

// =============================================================================
// COMMANDS
// =============================================================================

// waitForEvent blocks on the bridge event channel. Each delivery loops
// back through Update, which re-arms the wait.
func waitForEvent(events <-chan dispatch.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return backendEventMsg{event: ev, ok: ok}
	}
}

func (m Model) connectCmd(host string, port uint16, username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(background(), m.deps.Config.ConnectTimeout())
		defer cancel()
		return connectResultMsg{err: m.deps.Bridge.ConnectToServer(ctx, host, port, username)}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		u, ok := m.deps.Store.Users.Current()
		if !ok {
			return sendResultMsg{err: errNotConnected}
		}
		return sendResultMsg{err: m.deps.Orchestrator.SendChatMessage(background(), text, u)}
	}
}

// selfStatePatch builds a change_user_state patch addressed to the
// current user. Before the connected user is known there is no valid
// target, so the patch is refused rather than sent with a zero id.
func (m Model) selfStatePatch(mute, deaf *bool) (bridge.UserStatePatch, error) {
	u, ok := m.deps.Store.Users.Current()
	if !ok {
		return bridge.UserStatePatch{}, errNotConnected
	}
	return bridge.UserStatePatch{UserID: u.ID, SelfMute: mute, SelfDeaf: deaf}, nil
}

func (m Model) changeStateCmd(patch bridge.UserStatePatch) tea.Cmd {
	return func() tea.Msg {
		return stateChangeResultMsg{err: m.deps.Bridge.ChangeUserState(background(), patch)}
	}
}

func (m Model) previewCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return previewResultMsg{result: m.deps.Preview.Lookup(background(), url)}
	}
}
