// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/novalabs/nova-tui/internal/model"
	"github.com/novalabs/nova-tui/internal/ui/styles"
	"github.com/novalabs/nova-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// Sidebar renders the chat list. The entry being renamed shows the
// caller's rename editor in place of its title.
type Sidebar struct {
	Chats    []model.Chat
	ActiveID string
	Width    int
	Height   int

	// RenameID is the chat being renamed; RenameView is the rendered
	// editor to show in its row.
	RenameID   string
	RenameView string

	theme *styles.Theme
}

// NewSidebar creates a Sidebar component.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{Width: 28, Height: 20, theme: theme}
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetTheme swaps the theme.
func (s *Sidebar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	innerWidth := s.Width - 2
	if innerWidth < 8 {
		innerWidth = 8
	}

	var b strings.Builder
	b.WriteString(s.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n")

	if len(s.Chats) == 0 {
		b.WriteString(s.theme.ChatItemDate.Render(" no chats yet"))
	}

	for _, chat := range s.Chats {
		if chat.ID == s.RenameID {
			b.WriteString("\n")
			b.WriteString(s.RenameView)
			continue
		}

		title := util.TruncateWidth(chat.Title, innerWidth)
		style := s.theme.ChatItem
		if chat.ID == s.ActiveID {
			style = s.theme.ChatItemActive
		}

		b.WriteString("\n")
		b.WriteString(style.Width(innerWidth).Render(title))
		if date := chat.FormatLastActivity(); date != "" {
			b.WriteString("\n")
			b.WriteString(s.theme.ChatItemDate.Render("  " + date))
		}
	}

	return s.theme.Sidebar.
		Width(s.Width).
		Height(s.Height).
		Render(lipgloss.NewStyle().MaxHeight(s.Height).Render(b.String()))
}
