// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/novalabs/nova-tui/internal/api"
	"github.com/novalabs/nova-tui/internal/export"
	"github.com/novalabs/nova-tui/internal/model"
	"github.com/novalabs/nova-tui/internal/session"
)

// sessionExpired reports whether an API error means the token is dead.
func sessionExpired(err error) bool {
	return api.IsUnauthorized(err)
}

func expireCmd() tea.Cmd {
	return func() tea.Msg { return SessionExpiredMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case chatListMsg:
		return m.handleChatList(msg)

	case refreshTickMsg:
		return m, m.loadChatsCmd(false)

	case pollTickMsg:
		if !m.sync.PollAlive(msg.gen) {
			return m, nil
		}
		return m, m.pollMessagesCmd(msg.gen, m.sync.ActiveChatID())

	case messagesPolledMsg:
		return m.handlePollResult(msg)

	case sendResultMsg:
		return m.handleSendResult(msg)

	case chatCreatedMsg:
		return m.handleChatCreated(msg)

	case chatDeletedMsg:
		return m.handleChatDeleted(msg)

	case chatRenamedMsg:
		if msg.err != nil {
			if sessionExpired(msg.err) {
				return m, expireCmd()
			}
			return m, m.setStatus("Rename failed: "+msg.err.Error(), true)
		}
		m.sync.ApplyRename(*msg.chat)
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, session.ErrNothingToExport) || errors.Is(msg.err, export.ErrNoMessages) {
				return m, m.setStatus("No messages to export", true)
			}
			return m, m.setStatus("Export failed: "+msg.err.Error(), true)
		}
		return m, m.setStatus("Exported to "+msg.path, false)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.statusBar.ClearStatus()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeRenaming:
		return m.handleRenameKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Logout):
		return m, func() tea.Msg { return LogoutMsg{} }

	case key.Matches(msg, m.keyMap.Theme):
		return m, func() tea.Msg { return ThemeToggledMsg{} }

	case key.Matches(msg, m.keyMap.Submit):
		return m.submitMessage()

	case key.Matches(msg, m.keyMap.NewChat):
		if m.sync.SendInFlight() {
			return m, m.setStatus("Wait for the current send to finish", true)
		}
		return m, m.createChatCmd(model.DefaultChatTitle)

	case key.Matches(msg, m.keyMap.PrevChat):
		return m.switchRelative(-1)

	case key.Matches(msg, m.keyMap.NextChat):
		return m.switchRelative(1)

	case key.Matches(msg, m.keyMap.Rename):
		active := m.sync.ActiveChat()
		if active == nil {
			return m, nil
		}
		m.mode = modeRenaming
		m.renameInput.SetValue(active.Title)
		m.renameInput.CursorEnd()
		m.renameInput.Focus()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keyMap.Delete):
		active := m.sync.ActiveChat()
		if active == nil {
			return m, nil
		}
		if m.sync.SendInFlight() {
			return m, m.setStatus("Wait for the current send to finish", true)
		}
		m.mode = modeConfirmDelete
		m.deleteTarget = active.ID
		m.confirm.Reset("Delete chat", fmt.Sprintf("Delete %q?", active.Title))
		return m, nil

	case key.Matches(msg, m.keyMap.ExportJSON):
		return m, m.exportCmd(export.NewJSONExporter())

	case key.Matches(msg, m.keyMap.ExportText):
		return m, m.exportCmd(export.NewTextExporter())

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.renameInput.Blur()
		m.input.Focus()
		return m, nil

	case "enter":
		title := strings.TrimSpace(m.renameInput.Value())
		chatID := m.sync.ActiveChatID()
		m.mode = modeNormal
		m.renameInput.Blur()
		m.input.Focus()
		if title == "" || chatID == "" {
			return m, nil
		}
		return m, m.renameChatCmd(chatID, title)
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.mode = modeNormal
		m.deleteTarget = ""
		return m, nil

	case "left", "right", "tab":
		m.confirm.Toggle()
		return m, nil

	case "y":
		target := m.deleteTarget
		m.mode = modeNormal
		m.deleteTarget = ""
		return m, m.deleteChatCmd(target)

	case "enter":
		target := m.deleteTarget
		m.mode = modeNormal
		m.deleteTarget = ""
		if !m.confirm.Confirmed() {
			return m, nil
		}
		return m, m.deleteChatCmd(target)
	}
	return m, nil
}

// =============================================================================
// SENDING
// =============================================================================

func (m Model) submitMessage() (Model, tea.Cmd) {
	pending, err := m.sync.BeginSend(m.input.Value())
	switch {
	case errors.Is(err, session.ErrEmptyMessage):
		return m, nil
	case errors.Is(err, session.ErrSendInFlight):
		return m, m.setStatus("Still sending the previous message", true)
	case errors.Is(err, session.ErrNoActiveChat):
		return m, m.setStatus("No chat selected", true)
	case err != nil:
		return m, m.setStatus(err.Error(), true)
	}

	m.input.Reset()
	m.sending = true
	m.statusBar.Sending = true
	m.refreshViewport()
	return m, tea.Batch(
		m.spinner.Tick,
		m.sendMessageCmd(m.sync.ActiveChatID(), pending.Content),
	)
}

func (m Model) handleSendResult(msg sendResultMsg) (Model, tea.Cmd) {
	m.sending = false
	m.statusBar.Sending = false
	m.sync.FinishSend(msg.msgs, msg.err)
	m.refreshViewport()

	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m, expireCmd()
		}
		return m, m.setStatus("Failed to send message: "+msg.err.Error(), true)
	}
	return m, nil
}

// =============================================================================
// CHAT LIST AND POLLING
// =============================================================================

func (m Model) handleChatList(msg chatListMsg) (Model, tea.Cmd) {
	if msg.err != nil && sessionExpired(msg.err) {
		return m, expireCmd()
	}

	if !msg.initial {
		if msg.err != nil {
			// Transient failure: keep the current list and try again on
			// the next refresh tick.
			return m, refreshTickCmd()
		}
		m.sync.SetChats(msg.chats)
		return m, refreshTickCmd()
	}

	cmds := []tea.Cmd{refreshTickCmd()}
	chats := msg.chats
	if msg.err != nil {
		// A failed initial load degrades to an empty list so resolution
		// still runs and a fresh chat gets created.
		chats = nil
		cmds = append(cmds, m.setStatus("Failed to load chats: "+msg.err.Error(), true))
	}

	_, createNeeded := m.sync.ResolveActiveChat(chats)
	if createNeeded {
		return m, tea.Batch(append(cmds, m.createChatCmd(model.DefaultChatTitle))...)
	}

	gen := m.sync.BeginPoll()
	return m, tea.Batch(append(cmds, pollTickCmd(gen, initialPollDelay))...)
}

func (m Model) handlePollResult(msg messagesPolledMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m, expireCmd()
		}
		// Transient poll failures are silent; the next tick retries.
	} else if m.sync.ApplyMessages(msg.gen, msg.msgs) {
		m.refreshViewport()
	}

	if !m.sync.PollAlive(msg.gen) {
		return m, nil
	}
	return m, pollTickCmd(msg.gen, messagePollInterval)
}

// =============================================================================
// CHAT MANAGEMENT
// =============================================================================

// switchRelative moves the active chat up or down the sidebar list.
func (m Model) switchRelative(delta int) (Model, tea.Cmd) {
	chats := m.sync.Chats()
	if len(chats) < 2 {
		return m, nil
	}

	idx := 0
	activeID := m.sync.ActiveChatID()
	for i, chat := range chats {
		if chat.ID == activeID {
			idx = i
			break
		}
	}
	next := (idx + delta + len(chats)) % len(chats)
	return m.switchTo(chats[next].ID)
}

func (m Model) switchTo(chatID string) (Model, tea.Cmd) {
	gen, err := m.sync.SwitchChat(chatID)
	if errors.Is(err, session.ErrSendInFlight) {
		return m, m.setStatus("Wait for the current send to finish", true)
	}
	if err != nil {
		return m, nil
	}
	m.refreshViewport()
	return m, pollTickCmd(gen, initialPollDelay)
}

func (m Model) handleChatCreated(msg chatCreatedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m, expireCmd()
		}
		return m, m.setStatus("Failed to create chat: "+msg.err.Error(), true)
	}

	gen := m.sync.AdoptCreatedChat(*msg.chat)
	m.refreshViewport()
	return m, pollTickCmd(gen, initialPollDelay)
}

func (m Model) handleChatDeleted(msg chatDeletedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m, expireCmd()
		}
		return m, m.setStatus("Failed to delete chat: "+msg.err.Error(), true)
	}

	outcome, err := m.sync.RemoveChat(msg.chatID)
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}

	switch {
	case outcome.CreateNeeded:
		m.refreshViewport()
		return m, m.createChatCmd(model.DefaultChatTitle)
	case outcome.SwitchedTo != nil:
		m.refreshViewport()
		return m, pollTickCmd(outcome.Gen, initialPollDelay)
	}
	return m, nil
}
