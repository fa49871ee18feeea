// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/novalabs/nova-tui/internal/export"
)

// =============================================================================
// COMMANDS
// =============================================================================

// loadChatsCmd fetches the chat list.
func (m Model) loadChatsCmd(initial bool) tea.Cmd {
	client, token := m.client, m.sync.Token()
	return func() tea.Msg {
		chats, err := client.ListChats(context.Background(), token)
		return chatListMsg{chats: chats, err: err, initial: initial}
	}
}

// refreshTickCmd schedules the next chat list refresh.
func refreshTickCmd() tea.Cmd {
	return tea.Tick(chatRefreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// pollTickCmd schedules a message poll for a generation.
func pollTickCmd(gen uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

// pollMessagesCmd fetches messages for the given generation's chat.
func (m Model) pollMessagesCmd(gen uint64, chatID string) tea.Cmd {
	client, token := m.client, m.sync.Token()
	return func() tea.Msg {
		msgs, err := client.ListMessages(context.Background(), token, chatID)
		return messagesPolledMsg{gen: gen, msgs: msgs, err: err}
	}
}

// sendMessageCmd delivers a message and returns the server's timeline.
func (m Model) sendMessageCmd(chatID, content string) tea.Cmd {
	client, token := m.client, m.sync.Token()
	return func() tea.Msg {
		msgs, err := client.SendMessage(context.Background(), token, chatID, content)
		return sendResultMsg{msgs: msgs, err: err}
	}
}

// createChatCmd creates a chat with the given title.
func (m Model) createChatCmd(title string) tea.Cmd {
	client, token := m.client, m.sync.Token()
	return func() tea.Msg {
		chat, err := client.CreateChat(context.Background(), token, title)
		return chatCreatedMsg{chat: chat, err: err}
	}
}

// deleteChatCmd deletes a chat on the server.
func (m Model) deleteChatCmd(chatID string) tea.Cmd {
	client, token := m.client, m.sync.Token()
	return func() tea.Msg {
		err := client.DeleteChat(context.Background(), token, chatID)
		return chatDeletedMsg{chatID: chatID, err: err}
	}
}

// renameChatCmd renames a chat and returns the server's stored title.
func (m Model) renameChatCmd(chatID, title string) tea.Cmd {
	client, token := m.client, m.sync.Token()
	return func() tea.Msg {
		chat, err := client.RenameChat(context.Background(), token, chatID, title)
		return chatRenamedMsg{chat: chat, err: err}
	}
}

// exportCmd writes the active chat's transcript to disk.
func (m Model) exportCmd(exporter export.Exporter) tea.Cmd {
	chatName, msgs, err := m.sync.ExportSnapshot()
	if err != nil {
		return func() tea.Msg { return exportDoneMsg{err: err} }
	}
	return func() tea.Msg {
		transcript, err := export.NewTranscript(chatName, msgs)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := export.WriteFile(transcript, exporter, nil)
		return exportDoneMsg{path: path, err: err}
	}
}

// statusTimerCmd schedules expiry of the current status message.
func statusTimerCmd(seq int) tea.Cmd {
	return tea.Tick(statusVisibleFor, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
