// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/novalabs/nova-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is a key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar: transient status message plus key hints.
type StatusBar struct {
	Width   int
	Message string
	IsError bool
	Sending bool

	Shortcuts []Shortcut

	theme *styles.Theme
}

// NewStatusBar creates a StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetTheme swaps the theme.
func (s *StatusBar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// SetStatus sets the transient message.
func (s *StatusBar) SetStatus(message string, isError bool) {
	s.Message = message
	s.IsError = isError
}

// ClearStatus clears the transient message.
func (s *StatusBar) ClearStatus() {
	s.Message = ""
	s.IsError = false
}

// View renders the status bar.
func (s *StatusBar) View() string {
	var left string
	switch {
	case s.Sending:
		left = s.theme.SendingText.Render("sending...")
	case s.IsError:
		left = s.theme.StatusError.Render(s.Message)
	case s.Message != "":
		left = s.theme.StatusInfo.Render(s.Message)
	}

	hints := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		hints = append(hints,
			s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return s.theme.StatusBar.
		Width(s.Width).
		Render(left + strings.Repeat(" ", gap) + right)
}
