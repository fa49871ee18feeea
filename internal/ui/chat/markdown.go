// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/novalabs/nova-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders assistant markdown for the viewport.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// newMarkdownRenderer builds a glamour renderer wrapped to width. A
// renderer construction failure degrades to plain text.
func newMarkdownRenderer(theme *styles.Theme, width int) *markdownRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &markdownRenderer{width: width}
	}
	return &markdownRenderer{renderer: r, width: width}
}

// Render renders markdown content, falling back to the raw text when
// rendering fails.
func (m *markdownRenderer) Render(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
