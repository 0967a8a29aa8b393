// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/mumble-tui/internal/bridge"
	chatsvc "github.com/jeranaias/mumble-tui/internal/chat"
	"github.com/jeranaias/mumble-tui/internal/config"
	"github.com/jeranaias/mumble-tui/internal/dispatch"
	"github.com/jeranaias/mumble-tui/internal/eventlog"
	"github.com/jeranaias/mumble-tui/internal/preview"
	"github.com/jeranaias/mumble-tui/internal/settings"
	"github.com/jeranaias/mumble-tui/internal/store"
)

// phase is the top-level UI state.
type phase int

const (
	phaseConnect phase = iota
	phaseConnecting
	phaseChat
)

// connect form field indexes.
const (
	fieldHost = iota
	fieldPort
	fieldUsername
	fieldCount
)

const sidebarWidth = 28

// Deps are the wired application services the model runs against.
type Deps struct {
	Store        *store.Store
	Events       *eventlog.Log
	Dispatcher   *dispatch.Dispatcher
	Orchestrator *chatsvc.Orchestrator
	Bridge       *bridge.Bridge
	Preview      *preview.Fetcher
	Settings     *settings.Manager
	Config       *config.Config
	Log          zerolog.Logger
}

// Model is the Bubble Tea model for the whole client.
type Model struct {
	deps Deps
	keys KeyMap

	phase phase

	// Connect form state.
	fields  [fieldCount]textinput.Model
	focused int

	// Chat state.
	viewport   viewport.Model
	input      textinput.Model
	showEvents bool
	showHelp   bool
	preview    bool

	// Self mute/deafen as last requested; authoritative state still
	// comes back through user_update events.
	selfMute bool
	selfDeaf bool

	// Link previews keyed by URL; pendingPreviews guards against
	// duplicate fetches while one is in flight.
	previews        map[string]preview.Result
	pendingPreviews map[string]bool

	errMsg string
	width  int
	height int
	ready  bool
}

// NewModel builds the initial model from wired dependencies.
func NewModel(deps Deps) Model {
	m := Model{
		deps:            deps,
		keys:            DefaultKeyMap(),
		phase:           phaseConnect,
		showEvents:      deps.Settings.Frontend().ShowEventLog,
		previews:        make(map[string]preview.Result),
		pendingPreviews: make(map[string]bool),
	}

	host := textinput.New()
	host.Placeholder = "mumble.example.com"
	host.SetValue(deps.Config.Server.Host)
	host.Focus()

	port := textinput.New()
	port.Placeholder = "64738"
	if deps.Config.Server.Port != 0 {
		port.SetValue(strconv.Itoa(int(deps.Config.Server.Port)))
	}

	username := textinput.New()
	username.Placeholder = "username"
	username.SetValue(deps.Config.Server.Username)

	m.fields[fieldHost] = host
	m.fields[fieldPort] = port
	m.fields[fieldUsername] = username

	input := textinput.New()
	input.Placeholder = "Write a message..."
	input.CharLimit = 0
	m.input = input

	return m
}

// Init starts the backend event pump.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.deps.Bridge.Events())
}

// connectTarget reads the connect form, falling back to config
// defaults for empty fields.
func (m Model) connectTarget() (host string, port uint16, username string) {
	host = m.fields[fieldHost].Value()
	if host == "" {
		host = m.deps.Config.Server.Host
	}
	port = m.deps.Config.Server.Port
	if v := m.fields[fieldPort].Value(); v != "" {
		if p, err := strconv.ParseUint(v, 10, 16); err == nil {
			port = uint16(p)
		}
	}
	if port == 0 {
		port = 64738
	}
	username = m.fields[fieldUsername].Value()
	if username == "" {
		username = m.deps.Config.Server.Username
	}
	return host, port, username
}

// currentUser resolves the connected user from the store, if known.
func (m Model) currentUser() (userFound bool, muted, deafened bool) {
	u, ok := m.deps.Store.Users.Current()
	if !ok {
		return false, false, false
	}
	return true, u.SelfMute, u.SelfDeaf
}

func background() context.Context {
	return context.Background()
}
