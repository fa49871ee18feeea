// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the root application model that routes between
// the auth screens and the chat workspace.
package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/novalabs/nova-tui/internal/api"
	"github.com/novalabs/nova-tui/internal/config"
	"github.com/novalabs/nova-tui/internal/session"
	"github.com/novalabs/nova-tui/internal/store"
	"github.com/novalabs/nova-tui/internal/ui/auth"
	"github.com/novalabs/nova-tui/internal/ui/chat"
	"github.com/novalabs/nova-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

type screen int

const (
	screenAuth screen = iota
	screenChat
)

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	cfg    *config.Config
	client *api.Client
	store  store.Store
	sync   *session.Synchronizer
	theme  *styles.Theme

	screen screen
	auth   auth.Model
	chat   chat.Model

	width  int
	height int
}

// NewApp wires the application together. A session saved from a
// previous run goes straight to the chat workspace; otherwise the
// sign-in form is shown.
func NewApp(cfg *config.Config, client *api.Client, st store.Store) *App {
	theme := styles.New(loadThemePreference(cfg, st))

	app := &App{
		cfg:    cfg,
		client: client,
		store:  st,
		sync:   session.New(st),
		theme:  theme,
		screen: screenAuth,
		auth:   auth.New(client, theme),
	}

	if sess, err := store.LoadSession(st); err == nil {
		app.sync.Start(sess)
		app.chat = chat.New(client, app.sync, theme)
		app.screen = screenChat
	} else if !errors.Is(err, store.ErrNoSession) {
		store.ClearSession(st)
	}
	return app
}

// loadThemePreference resolves the startup theme: the store remembers
// the last runtime choice, the config file seeds first launch.
func loadThemePreference(cfg *config.Config, st store.Store) bool {
	if name, err := st.Get(store.KeyTheme); err == nil {
		return name != "light"
	}
	return cfg.UI.Theme != "light"
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.screen == screenChat {
		return a.chat.Init()
	}
	return a.auth.Init()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.auth.SetSize(msg.Width, msg.Height)
		if a.screen == screenChat {
			var cmd tea.Cmd
			a.chat, cmd = a.chat.Update(msg)
			return a, cmd
		}
		return a, nil

	case auth.AuthenticatedMsg:
		return a.startSession(msg)

	case chat.LogoutMsg, chat.SessionExpiredMsg:
		return a.endSession()

	case chat.ThemeToggledMsg:
		return a.toggleTheme()
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenAuth:
		a.auth, cmd = a.auth.Update(msg)
	case screenChat:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

// startSession moves from the auth screens into the chat workspace.
func (a *App) startSession(msg auth.AuthenticatedMsg) (tea.Model, tea.Cmd) {
	a.sync.Start(msg.Session)
	// Persistence is best effort: a failed save costs a re-login next
	// launch, nothing more.
	store.SaveSession(a.store, msg.Session)

	a.chat = chat.New(a.client, a.sync, a.theme)
	a.screen = screenChat

	cmds := []tea.Cmd{a.chat.Init()}
	if a.width > 0 {
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// endSession drops back to the sign-in form and forgets the session.
func (a *App) endSession() (tea.Model, tea.Cmd) {
	store.ClearSession(a.store)
	a.sync.Close()
	a.sync = session.New(a.store)

	a.auth = auth.New(a.client, a.theme)
	a.auth.SetSize(a.width, a.height)
	a.screen = screenAuth
	return a, a.auth.Init()
}

// toggleTheme flips dark/light, remembers the choice, and restyles the
// active screens.
func (a *App) toggleTheme() (tea.Model, tea.Cmd) {
	a.theme = styles.New(!a.theme.IsDark)
	a.store.Set(store.KeyTheme, a.theme.Name())

	a.auth.SetTheme(a.theme)
	if a.screen == screenChat {
		a.chat.SetTheme(a.theme)
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.screen == screenChat {
		return a.chat.View()
	}
	return a.auth.View()
}
