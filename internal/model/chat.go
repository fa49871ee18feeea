// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat is a conversation summary as reported by the server. The id is
// always server-assigned; the client never invents one for a real chat.
type Chat struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	LastActivity time.Time `json:"lastActivity"`
}

// DefaultChatTitle is the title given to chats created by the client.
const DefaultChatTitle = "New Chat"

// FormatLastActivity renders the server-authoritative activity timestamp
// for the sidebar. Zero values render empty.
func (c Chat) FormatLastActivity() string {
	if c.LastActivity.IsZero() {
		return ""
	}
	return c.LastActivity.Local().Format("2006-01-02")
}

// FindChat returns the chat with the given id, or nil if absent.
func FindChat(chats []Chat, id string) *Chat {
	for i := range chats {
		if chats[i].ID == id {
			return &chats[i]
		}
	}
	return nil
}
