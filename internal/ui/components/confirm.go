// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/novalabs/nova-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG COMPONENT
// =============================================================================

// Confirm is a yes/no overlay for destructive actions.
type Confirm struct {
	Title  string
	Prompt string

	// yes is the highlighted choice. Defaults to no so a stray Enter
	// cannot confirm a deletion.
	yes bool

	theme *styles.Theme
}

// NewConfirm creates a Confirm dialog.
func NewConfirm(theme *styles.Theme) *Confirm {
	return &Confirm{theme: theme}
}

// Reset prepares the dialog for a new question.
func (c *Confirm) Reset(title, prompt string) {
	c.Title = title
	c.Prompt = prompt
	c.yes = false
}

// Toggle flips the highlighted choice.
func (c *Confirm) Toggle() {
	c.yes = !c.yes
}

// Confirmed reports whether yes is highlighted.
func (c *Confirm) Confirmed() bool {
	return c.yes
}

// SetTheme swaps the theme.
func (c *Confirm) SetTheme(theme *styles.Theme) {
	c.theme = theme
}

// View renders the dialog box.
func (c *Confirm) View() string {
	yesStyle := c.theme.ConfirmButton
	noStyle := c.theme.ConfirmButtonActive
	if c.yes {
		yesStyle = c.theme.ConfirmButtonActive
		noStyle = c.theme.ConfirmButton
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yesStyle.Render("Yes"),
		"  ",
		noStyle.Render("No"),
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		c.theme.ConfirmTitle.Render(c.Title),
		"",
		c.Prompt,
		"",
		buttons,
	)
	return c.theme.ConfirmBox.Render(content)
}
