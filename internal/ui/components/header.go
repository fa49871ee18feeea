// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Nova TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/novalabs/nova-tui/internal/ui/styles"
	"github.com/novalabs/nova-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the top title bar: brand, active chat title, signed-in user.
type Header struct {
	ChatTitle string
	UserEmail string
	Width     int

	theme *styles.Theme
}

// NewHeader creates a Header component.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTheme swaps the theme.
func (h *Header) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}

	brand := h.theme.HeaderBrand.Render("Nova")
	title := ""
	if h.ChatTitle != "" {
		title = h.theme.HeaderTitle.Render(util.TruncateWidth(h.ChatTitle, width/2))
	}
	left := brand
	if title != "" {
		left = lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", title)
	}

	right := ""
	if h.UserEmail != "" {
		right = h.theme.HeaderUser.Render(h.UserEmail)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + lipgloss.NewStyle().Width(gap).Render("") + right

	return h.theme.Header.Width(width).Render(line)
}
