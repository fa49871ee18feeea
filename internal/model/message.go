// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages, and the
// authenticated session.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLES
// =============================================================================

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the display label used for a role in transcripts.
func (r Role) Label() string {
	if r == RoleUser {
		return "User"
	}
	return "AI"
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat message. Messages are append-only from the
// client's perspective: once rendered, a message's position never moves.
type Message struct {
	// ID is assigned by the server. Optimistic local entries carry a
	// transient UUID until the server's list replaces them.
	ID        string    `json:"_id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Pending marks a locally-constructed message awaiting server
	// confirmation. Never serialized.
	Pending bool `json:"-"`
}

// NewPendingMessage builds the optimistic user message appended to the
// display list before the send round-trip resolves.
func NewPendingMessage(content string) Message {
	return Message{
		ID:        "local_" + uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		Pending:   true,
	}
}

// FormatTime renders the message timestamp as HH:MM for inline display.
// Zero timestamps produce an empty string rather than a bogus time.
func (m Message) FormatTime() string {
	if m.Timestamp.IsZero() {
		return ""
	}
	return m.Timestamp.Local().Format("15:04")
}

// =============================================================================
// LIST IDENTITY
// =============================================================================

// LastMessageID returns the identity of the final message in a list, or ""
// for an empty list. The polling loop compares this against the last-seen
// identity to suppress redundant state replacement.
func LastMessageID(msgs []Message) string {
	if len(msgs) == 0 {
		return ""
	}
	last := msgs[len(msgs)-1]
	if last.ID != "" {
		return last.ID
	}
	// Servers that omit ids still get a stable identity.
	return string(last.Role) + "|" + last.Timestamp.UTC().Format(time.RFC3339Nano) + "|" + last.Content
}
