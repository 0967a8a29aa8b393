// mumble-tui - A terminal client for Mumble chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/mumble-tui/internal/bridge"
	chatsvc "github.com/jeranaias/mumble-tui/internal/chat"
	"github.com/jeranaias/mumble-tui/internal/config"
	"github.com/jeranaias/mumble-tui/internal/dispatch"
	"github.com/jeranaias/mumble-tui/internal/eventlog"
	"github.com/jeranaias/mumble-tui/internal/logging"
	"github.com/jeranaias/mumble-tui/internal/preview"
	"github.com/jeranaias/mumble-tui/internal/settings"
	"github.com/jeranaias/mumble-tui/internal/store"
	"github.com/jeranaias/mumble-tui/internal/textpipe"
	"github.com/jeranaias/mumble-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (default ~/.mumble-tui/config.toml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mumble-tui %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(dataDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	logger.Info().Str("version", Version).Msg("Starting mumble-tui")

	mgr, err := settings.NewManager(dataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	defer mgr.Close()

	dialCtx, cancelDial := context.WithTimeout(context.Background(), cfg.ConnectTimeout())
	br, err := bridge.Dial(dialCtx, cfg.Backend.Addr, logger)
	cancelDial()
	if err != nil {
		return fmt.Errorf("failed to reach backend at %s: %w", cfg.Backend.Addr, err)
	}
	defer br.Close()

	pipe := textpipe.New()
	st := store.New(pipe)

	events := eventlog.New()
	events.Attach(st.Users)

	dispatcher := dispatch.New(st, pipe, func(ctx context.Context) {
		if err := br.Logout(ctx); err != nil {
			logger.Warn().Err(err).Msg("Logout notification failed")
		}
	}, logger)
	dispatcher.OnReset(events.Reset)

	orchestrator := chatsvc.New(pipe, st.Messages, br, logger)

	previews := preview.New(mgr.Frontend().LinkPreview, logger)

	m := chat.NewModel(chat.Deps{
		Store:        st,
		Events:       events,
		Dispatcher:   dispatcher,
		Orchestrator: orchestrator,
		Bridge:       br,
		Preview:      previews,
		Settings:     mgr,
		Config:       cfg,
		Log:          logger,
	})

	// Pin the color profile once so styles render consistently even
	// when stdout detection is confused by the alt screen.
	lipgloss.SetColorProfile(termenv.ColorProfile())

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Config edits apply without a restart: the watcher feeds reloaded
	// configs into the running program.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if watchPath, pathErr := config.ConfigPath(); pathErr == nil {
		if configPath != "" {
			watchPath = configPath
		}
		go func() {
			err := config.Watch(watchCtx, watchPath, logger, func(next *config.Config) {
				p.Send(chat.ConfigReloadedMsg{Config: next})
			})
			if err != nil && watchCtx.Err() == nil {
				logger.Warn().Err(err).Msg("Config watcher stopped")
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}

	logger.Info().Msg("Shutting down")
	return nil
}
