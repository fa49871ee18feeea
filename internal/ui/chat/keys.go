// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/novalabs/nova-tui/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat workspace.
type KeyMap struct {
	Submit     key.Binding
	NewChat    key.Binding
	PrevChat   key.Binding
	NextChat   key.Binding
	Rename     key.Binding
	Delete     key.Binding
	ExportJSON key.Binding
	ExportText key.Binding
	Theme      key.Binding
	Logout     key.Binding
	Quit       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new chat"),
		),
		PrevChat: key.NewBinding(
			key.WithKeys("alt+up", "ctrl+p"),
			key.WithHelp("alt+up", "prev chat"),
		),
		NextChat: key.NewBinding(
			key.WithKeys("alt+down", "ctrl+o"),
			key.WithHelp("alt+down", "next chat"),
		),
		Rename: key.NewBinding(
			key.WithKeys("ctrl+r", "f2"),
			key.WithHelp("ctrl+r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export json"),
		),
		ExportText: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "export text"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// shortcuts returns the status bar hints for the key map.
func (k KeyMap) shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "ctrl+n", Desc: "new"},
		{Key: "ctrl+r", Desc: "rename"},
		{Key: "ctrl+d", Desc: "delete"},
		{Key: "ctrl+e", Desc: "export"},
		{Key: "ctrl+l", Desc: "logout"},
	}
}
