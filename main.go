// Nova TUI - a terminal client for the Nova chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/novalabs/nova-tui/internal/api"
	"github.com/novalabs/nova-tui/internal/config"
	"github.com/novalabs/nova-tui/internal/store"
	"github.com/novalabs/nova-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "config file path (default ~/.nova/config.toml)")
		serverURL   = flag.String("server", "", "chat backend URL (overrides config)")
		debug       = flag.Bool("debug", false, "write debug logs to nova-debug.log")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("nova %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "nova is an interactive application and needs a terminal")
		os.Exit(1)
	}

	if *debug {
		f, err := tea.LogToFile("nova-debug.log", "nova")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.API.BaseURL = *serverURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	st := openStore(cfg)
	defer st.Close()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:         cfg.API.BaseURL,
		RegisterTimeout: cfg.API.RegisterTimeout(),
	})

	app := ui.NewApp(cfg, client, st)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running nova: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// openStore opens the on-disk store, falling back to memory when the
// database cannot be opened. The app still works then; it just forgets
// the session and preferences on exit.
func openStore(cfg *config.Config) store.Store {
	path := cfg.Store.Path
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: no home directory, state will not persist: %v\n", err)
			return store.NewMemoryStore()
		}
	}

	st, err := store.OpenSQLite(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open %s, state will not persist: %v\n", path, err)
		return store.NewMemoryStore()
	}
	return st
}
