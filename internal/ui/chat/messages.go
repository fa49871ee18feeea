// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/novalabs/nova-tui/internal/model"
)

// =============================================================================
// TIMING
// =============================================================================

const (
	// initialPollDelay is the pause before the first message fetch after
	// entering a chat, long enough for the switch to settle visually.
	initialPollDelay = 100 * time.Millisecond

	// messagePollInterval is the cadence of message polling. The next
	// poll is scheduled only after the previous result arrived, so slow
	// responses stretch the interval instead of stacking requests.
	messagePollInterval = time.Second

	// chatRefreshInterval is the cadence of chat list refreshes.
	chatRefreshInterval = 5 * time.Second

	// statusVisibleFor is how long transient status messages stay up.
	statusVisibleFor = 4 * time.Second
)

// =============================================================================
// ROOT-FACING MESSAGES
// =============================================================================

// LogoutMsg asks the root model to end the session.
type LogoutMsg struct{}

// SessionExpiredMsg reports that the backend rejected the token.
type SessionExpiredMsg struct{}

// ThemeToggledMsg asks the root model to flip the theme.
type ThemeToggledMsg struct{}

// =============================================================================
// INTERNAL MESSAGES
// =============================================================================

// chatListMsg carries a chat list fetch result. initial marks the fetch
// that bootstraps the view.
type chatListMsg struct {
	chats   []model.Chat
	err     error
	initial bool
}

// refreshTickMsg fires a chat list refresh.
type refreshTickMsg struct{}

// pollTickMsg fires a message poll for a generation.
type pollTickMsg struct {
	gen uint64
}

// messagesPolledMsg carries a message poll result.
type messagesPolledMsg struct {
	gen  uint64
	msgs []model.Message
	err  error
}

// sendResultMsg carries the outcome of a send.
type sendResultMsg struct {
	msgs []model.Message
	err  error
}

// chatCreatedMsg carries a chat creation result.
type chatCreatedMsg struct {
	chat *model.Chat
	err  error
}

// chatDeletedMsg reports that the server deleted a chat.
type chatDeletedMsg struct {
	chatID string
	err    error
}

// chatRenamedMsg carries the server's view of a renamed chat.
type chatRenamedMsg struct {
	chat *model.Chat
	err  error
}

// exportDoneMsg carries the outcome of an export.
type exportDoneMsg struct {
	path string
	err  error
}

// statusExpiredMsg clears a transient status message.
type statusExpiredMsg struct {
	seq int
}
