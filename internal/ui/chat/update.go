// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Update is the single message loop for the whole client.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case backendEventMsg:
		return m.handleBackendEvent(msg)

	case connectResultMsg:
		if msg.err != nil {
			m.phase = phaseConnect
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.phase = phaseChat
		m.errMsg = ""
		m.input.Focus()
		return m, nil

	case sendResultMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		m.refreshViewport()
		return m, nil

	case stateChangeResultMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case ConfigReloadedMsg:
		m.deps.Config = msg.Config
		return m, nil

	case previewResultMsg:
		delete(m.pendingPreviews, msg.result.URL)
		m.previews[msg.result.URL] = msg.result
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	vpWidth := msg.Width - sidebarWidth - 4
	vpHeight := msg.Height - 8
	if vpWidth < 20 {
		vpWidth = 20
	}
	if vpHeight < 5 {
		vpHeight = 5
	}
	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.input.Width = vpWidth - 4
	m.refreshViewport()
	return m
}

// handleBackendEvent applies one backend event through the dispatcher
// and re-arms the event wait. Running dispatch inside Update keeps
// store access serialized with rendering.
func (m Model) handleBackendEvent(msg backendEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.phase = phaseConnect
		m.errMsg = "connection to backend lost"
		return m, nil
	}

	if err := m.deps.Dispatcher.Dispatch(background(), msg.event); err != nil {
		m.deps.Log.Warn().Str("type", msg.event.MessageType).Err(err).Msg("Dropped backend event")
	}

	if !m.deps.Store.Server.State().Connected && m.phase == phaseChat {
		m.phase = phaseConnect
		m.errMsg = "disconnected from server"
	}

	m.refreshViewport()

	cmds := []tea.Cmd{waitForEvent(m.deps.Bridge.Events())}
	if cmd := m.fetchMissingPreviews(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// fetchMissingPreviews issues lookups for message links that have no
// cached preview yet.
func (m *Model) fetchMissingPreviews() tea.Cmd {
	if m.deps.Preview == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, msg := range m.deps.Store.Messages.All() {
		url, ok := firstLinkURL(msg.Message)
		if !ok {
			continue
		}
		if _, have := m.previews[url]; have || m.pendingPreviews[url] {
			continue
		}
		m.pendingPreviews[url] = true
		cmds = append(cmds, m.previewCmd(url))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.phase {
	case phaseConnect:
		return m.handleConnectKey(msg)
	case phaseConnecting:
		return m, nil
	default:
		return m.handleChatKey(msg)
	}
}

func (m Model) handleConnectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.fields[m.focused].Blur()
		m.focused = (m.focused + 1) % fieldCount
		m.fields[m.focused].Focus()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		host, port, username := m.connectTarget()
		if host == "" || username == "" {
			m.errMsg = "host and username are required"
			return m, nil
		}
		m.phase = phaseConnecting
		m.errMsg = ""
		return m, m.connectCmd(host, port, username)
	}

	var cmd tea.Cmd
	m.fields[m.focused], cmd = m.fields[m.focused].Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleEvents):
		m.showEvents = !m.showEvents
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.deps.Orchestrator.DeleteMessages()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Mute):
		mute := !m.selfMute
		patch, err := m.selfStatePatch(&mute, nil)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.selfMute = mute
		return m, m.changeStateCmd(patch)

	case key.Matches(msg, m.keys.Deafen):
		deaf := !m.selfDeaf
		patch, err := m.selfStatePatch(nil, &deaf)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.selfDeaf = deaf
		return m, m.changeStateCmd(patch)

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown),
		key.Matches(msg, m.keys.Home), key.Matches(msg, m.keys.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		m.input.Reset()
		m.preview = false
		if text == "" {
			return m, nil
		}
		return m, m.sendCmd(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
