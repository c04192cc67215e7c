// atomine TUI - A terminal client for the Atomine assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomine/atomine-tui/internal/api"
	"github.com/atomine/atomine-tui/internal/config"
	"github.com/atomine/atomine-tui/internal/session"
	"github.com/atomine/atomine-tui/internal/store"
	"github.com/atomine/atomine-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default ~/.atomine/config.toml)")
		baseURL     = flag.String("base-url", "", "integration proxy base URL (overrides config)")
		showVersion = flag.Bool("version", false, "print version and exit")
		verbose     = flag.Bool("verbose", false, "log requests to stderr")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("atomine %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// The TUI owns the terminal; keep request logging out of it unless
	// asked for.
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "atomine: %v\n", err)
		os.Exit(1)
	}
	// Flag overrides outrank the file and survive config reloads.
	config.SetOverrides(config.Overrides{BaseURL: *baseURL})
	config.SetGlobal(cfg)

	client := api.NewClient(cfg.API.BaseURL).
		WithStreamTimeout(time.Duration(cfg.API.StreamTimeoutSecs) * time.Second)
	st := store.New(cfg.DefaultModel())

	orch := session.New(st, client)
	orch.SetPreferences(cfg.Preferences())
	orch.SetImageBackend(cfg.ImageBackend())

	// Config edits apply live; preferences refresh on reload.
	watcher, err := config.NewWatcher(time.Second, func(fresh *config.Config) {
		orch.SetPreferences(fresh.Preferences())
		orch.SetImageBackend(fresh.ImageBackend())
	})
	if err == nil {
		if err := watcher.Watch(); err != nil {
			log.Printf("config watch unavailable: %v", err)
		}
		defer watcher.Close()
	}

	p := tea.NewProgram(chat.New(orch, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "atomine: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads from the explicit path if given, else the default
// location with fallback to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
