// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the client-side chat session state and the
// reconciliation rules that keep it consistent with the backend.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/novalabs/nova-tui/internal/model"
	"github.com/novalabs/nova-tui/internal/store"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage is returned when a send is attempted with no content.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoActiveChat is returned when an operation needs an active chat
	// and none is selected.
	ErrNoActiveChat = errors.New("no active chat")

	// ErrSendInFlight is returned when an operation conflicts with a send
	// that has not completed yet.
	ErrSendInFlight = errors.New("a send is already in progress")

	// ErrNothingToExport is returned when the active chat has no messages.
	ErrNothingToExport = errors.New("no messages to export")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session is closed")
)

// =============================================================================
// SYNCHRONIZER
// =============================================================================

// Synchronizer owns the session's chat state: the chat list, the active
// chat, and its message timeline. All mutation goes through it so the
// polling loops, the send path, and chat management stay consistent.
//
// Results of in-flight network calls are tagged with a generation number
// taken from BeginPoll or SwitchChat. A result whose generation no longer
// matches is stale (the user switched chats, or the session closed) and
// is discarded, never applied to the wrong chat.
//
// The Synchronizer is safe for concurrent use.
type Synchronizer struct {
	mu sync.Mutex

	session *model.Session
	store   store.Store

	chats        []model.Chat
	activeChatID string
	messages     []model.Message

	// Polling epoch state. firstPoll forces the first result of an epoch
	// to apply even when the identity comparison would call it redundant.
	pollGen       uint64
	firstPoll     bool
	lastMessageID string

	sendInFlight bool
	closed       bool
}

// New creates a synchronizer backed by the given store. The store is
// used to remember the active chat across restarts; persistence failures
// are swallowed, a forgotten selection must never break the session.
func New(st store.Store) *Synchronizer {
	return &Synchronizer{store: st}
}

// Start binds the authenticated session.
func (s *Synchronizer) Start(session *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// Session returns the bound session, or nil before Start.
func (s *Synchronizer) Session() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Token returns the session's bearer token, or "" before Start.
func (s *Synchronizer) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Close invalidates the synchronizer. In-flight poll and send results
// arriving afterwards are discarded.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pollGen++
}

// =============================================================================
// CHAT LIST
// =============================================================================

// ResolveActiveChat installs the initial chat list and picks the active
// chat: the stored selection if it still exists, otherwise the first
// chat. When the list is empty it reports that a chat must be created.
func (s *Synchronizer) ResolveActiveChat(chats []model.Chat) (chatID string, createNeeded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats = chats
	if len(chats) == 0 {
		s.activeChatID = ""
		return "", true
	}

	saved, err := s.store.Get(store.KeyCurrentChat)
	if err == nil && model.FindChat(chats, saved) != nil {
		s.activeChatID = saved
		return saved, false
	}

	s.activeChatID = chats[0].ID
	s.persistActiveLocked()
	return s.activeChatID, false
}

// AdoptCreatedChat appends a freshly created chat and makes it active.
func (s *Synchronizer) AdoptCreatedChat(chat model.Chat) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats = append(s.chats, chat)
	s.activeChatID = chat.ID
	s.messages = nil
	s.persistActiveLocked()
	return s.resetEpochLocked()
}

// SetChats replaces the chat list wholesale with the server's view.
// Refresh results arriving after Close are ignored. The active chat id
// is left alone even if the server no longer lists it; the next poll or
// operation against it surfaces the problem.
func (s *Synchronizer) SetChats(chats []model.Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.chats = chats
}

// Chats returns a snapshot of the chat list.
func (s *Synchronizer) Chats() []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]model.Chat, len(s.chats))
	copy(snapshot, s.chats)
	return snapshot
}

// ActiveChatID returns the active chat id, or "".
func (s *Synchronizer) ActiveChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeChatID
}

// ActiveChat returns the active chat, or nil.
func (s *Synchronizer) ActiveChat() *model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.FindChat(s.chats, s.activeChatID)
}

// ApplyRename reconciles a rename against the server's response. The
// stored title is what the server reports, not what the user typed.
func (s *Synchronizer) ApplyRename(chat model.Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.chats {
		if s.chats[i].ID == chat.ID {
			s.chats[i].Title = chat.Title
			return
		}
	}
}

// =============================================================================
// CHAT SWITCHING AND DELETION
// =============================================================================

// SwitchChat makes chatID the active chat, clears the visible timeline,
// and starts a new polling epoch. Switching is refused while a send is
// in flight so the pending message cannot land in the wrong chat.
func (s *Synchronizer) SwitchChat(chatID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	if s.sendInFlight {
		return 0, ErrSendInFlight
	}

	s.activeChatID = chatID
	s.messages = nil
	s.persistActiveLocked()
	return s.resetEpochLocked(), nil
}

// DeleteOutcome describes what RemoveChat decided.
type DeleteOutcome struct {
	// SwitchedTo is the chat that became active, nil if none did.
	SwitchedTo *model.Chat

	// Gen is the new polling generation when a switch happened.
	Gen uint64

	// CreateNeeded reports that the last chat was deleted and a
	// replacement must be created.
	CreateNeeded bool
}

// RemoveChat drops a chat after the server confirmed its deletion. If
// the active chat was deleted, the first remaining chat takes over;
// with no chats left the caller must create a fresh one.
func (s *Synchronizer) RemoveChat(chatID string) (DeleteOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return DeleteOutcome{}, ErrClosed
	}
	if s.sendInFlight && chatID == s.activeChatID {
		return DeleteOutcome{}, ErrSendInFlight
	}

	remaining := s.chats[:0:0]
	for _, chat := range s.chats {
		if chat.ID != chatID {
			remaining = append(remaining, chat)
		}
	}
	s.chats = remaining

	if chatID != s.activeChatID {
		return DeleteOutcome{}, nil
	}

	s.messages = nil
	if len(remaining) == 0 {
		s.activeChatID = ""
		s.pollGen++
		return DeleteOutcome{CreateNeeded: true}, nil
	}

	next := remaining[0]
	s.activeChatID = next.ID
	s.persistActiveLocked()
	return DeleteOutcome{SwitchedTo: &next, Gen: s.resetEpochLocked()}, nil
}

// =============================================================================
// MESSAGE POLLING
// =============================================================================

// BeginPoll starts a polling epoch for the active chat and returns its
// generation. The first result of an epoch always applies, so a chat
// whose list is genuinely empty still renders promptly.
func (s *Synchronizer) BeginPoll() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetEpochLocked()
}

// PollAlive reports whether results for the given generation should
// still be fetched.
func (s *Synchronizer) PollAlive(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && gen == s.pollGen
}

// ApplyMessages reconciles a poll result. It reports whether the
// timeline changed. Stale generations are discarded. Results arriving
// while a send is in flight are skipped so they cannot clobber the
// optimistic message. A result whose last-message identity matches the
// previous one is redundant and leaves the timeline untouched, keeping
// the visible slice reference-stable across idle polls. After the first
// poll of an epoch an empty result is treated as transient and never
// wipes a rendered timeline.
func (s *Synchronizer) ApplyMessages(gen uint64, msgs []model.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.pollGen || s.sendInFlight {
		return false
	}

	identity := model.LastMessageID(msgs)
	if !s.firstPoll && (len(msgs) == 0 || identity == s.lastMessageID) {
		return false
	}

	s.firstPoll = false
	s.lastMessageID = identity
	s.messages = msgs
	return true
}

// Messages returns the current timeline. The returned slice is the
// internal one; callers treat it as read-only. Idle polls do not
// replace it, so callers may compare slice identity to skip re-renders.
func (s *Synchronizer) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages
}

// =============================================================================
// SENDING
// =============================================================================

// BeginSend validates content, appends an optimistic pending message to
// the timeline, and marks a send in flight. Only one send may be in
// flight at a time.
func (s *Synchronizer) BeginSend(content string) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.Message{}, ErrClosed
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return model.Message{}, ErrEmptyMessage
	}
	if s.activeChatID == "" {
		return model.Message{}, ErrNoActiveChat
	}
	if s.sendInFlight {
		return model.Message{}, ErrSendInFlight
	}

	pending := model.NewPendingMessage(content)
	s.messages = append(s.messages, pending)
	s.sendInFlight = true
	return pending, nil
}

// FinishSend completes a send. On success the server's authoritative
// message list replaces the timeline, pending message included. On
// failure the optimistic message stays visible; the next poll that
// reflects server state reconciles the timeline.
func (s *Synchronizer) FinishSend(msgs []model.Message, sendErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sendInFlight = false
	if sendErr != nil || s.closed {
		return
	}

	s.firstPoll = false
	s.lastMessageID = model.LastMessageID(msgs)
	s.messages = msgs
}

// SendInFlight reports whether a send is pending.
func (s *Synchronizer) SendInFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendInFlight
}

// =============================================================================
// EXPORT
// =============================================================================

// ExportSnapshot captures the active chat's name and messages for
// export. Exporting an empty chat is refused.
func (s *Synchronizer) ExportSnapshot() (chatName string, msgs []model.Message, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := model.FindChat(s.chats, s.activeChatID)
	if active == nil {
		return "", nil, ErrNoActiveChat
	}
	if len(s.messages) == 0 {
		return "", nil, ErrNothingToExport
	}

	snapshot := make([]model.Message, len(s.messages))
	copy(snapshot, s.messages)
	return active.Title, snapshot, nil
}

// =============================================================================
// INTERNAL
// =============================================================================

// resetEpochLocked starts a fresh polling epoch. Caller holds mu.
func (s *Synchronizer) resetEpochLocked() uint64 {
	s.pollGen++
	s.firstPoll = true
	s.lastMessageID = ""
	return s.pollGen
}

// persistActiveLocked remembers the active chat, best effort. Caller
// holds mu.
func (s *Synchronizer) persistActiveLocked() {
	if s.store == nil {
		return
	}
	s.store.Set(store.KeyCurrentChat, s.activeChatID)
}
