// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/novalabs/nova-tui/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	active := m.sync.ActiveChat()
	if active != nil {
		m.header.ChatTitle = active.Title
	} else {
		m.header.ChatTitle = ""
	}

	m.sidebar.Chats = m.sync.Chats()
	m.sidebar.ActiveID = m.sync.ActiveChatID()
	if m.mode == modeRenaming {
		m.sidebar.RenameID = m.sync.ActiveChatID()
		m.sidebar.RenameView = m.renameInput.View()
	} else {
		m.sidebar.RenameID = ""
	}

	var center string
	if m.mode == modeConfirmDelete {
		center = lipgloss.Place(
			m.viewport.Width, m.viewport.Height,
			lipgloss.Center, lipgloss.Center,
			m.confirm.View(),
		)
	} else {
		center = m.viewport.View()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), center)

	prompt := m.theme.InputPrompt.Render("> ")
	inputLine := m.theme.InputContainer.
		Width(m.viewport.Width).
		Render(prompt + m.input.View())
	if m.sending {
		inputLine = m.theme.InputContainer.
			Width(m.viewport.Width).
			Render(m.spinner.View() + " " + m.theme.SendingText.Render("sending..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		inputLine,
		m.statusBar.View(),
	)
}

// =============================================================================
// TIMELINE RENDERING
// =============================================================================

// refreshViewport re-renders the timeline into the viewport if it
// changed since the last render, then scrolls to the bottom.
func (m *Model) refreshViewport() {
	msgs := m.sync.Messages()
	if m.rendered != nil && len(m.rendered) == len(msgs) && (len(msgs) == 0 || &m.rendered[0] == &msgs[0]) {
		return
	}

	m.viewport.SetContent(m.renderTimeline(msgs))
	m.viewport.GotoBottom()
	m.rendered = msgs
}

func (m Model) renderTimeline(msgs []model.Message) string {
	if len(msgs) == 0 {
		return m.theme.EmptyState.
			Width(m.viewport.Width).
			Render("\nNo messages yet. Say hello!")
	}

	bubbleWidth := m.viewport.Width - 8
	if bubbleWidth < 16 {
		bubbleWidth = 16
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}

		if t := msg.FormatTime(); t != "" {
			b.WriteString(m.theme.MessageTime.Render(t))
			b.WriteString("\n")
		}

		switch {
		case msg.Pending:
			b.WriteString(m.theme.PendingBubble.MaxWidth(bubbleWidth).Render(msg.Content))
		case msg.Role == model.RoleUser:
			b.WriteString(m.theme.UserBubble.MaxWidth(bubbleWidth).Render(msg.Content))
		default:
			b.WriteString(m.theme.AssistantBubble.MaxWidth(bubbleWidth).Render(m.markdown.Render(msg.Content)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
