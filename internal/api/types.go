// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"

	"github.com/novalabs/nova-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Fullname model.Fullname `json:"fullname"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type sendRequest struct {
	ChatID  string `json:"chatId"`
	Content string `json:"content"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// AuthResult is the successful response of login and register.
type AuthResult struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

type renameResponse struct {
	Chat model.Chat `json:"chat"`
}

// errorResponse is the backend's failure envelope.
type errorResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// LIST NORMALIZATION
// =============================================================================

// The backend answers list endpoints either with a bare array or with a
// wrapped object ({"chats": [...]}, {"messages": [...]}). Both shapes are
// normalized here, at the decode boundary, so call sites never re-check.

type chatListPayload struct {
	Chats []model.Chat
}

func (p *chatListPayload) UnmarshalJSON(data []byte) error {
	var arr []model.Chat
	if err := json.Unmarshal(data, &arr); err == nil {
		p.Chats = arr
		return nil
	}

	var wrapped struct {
		Chats []model.Chat `json:"chats"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	p.Chats = wrapped.Chats
	return nil
}

type messageListPayload struct {
	Messages []model.Message
}

func (p *messageListPayload) UnmarshalJSON(data []byte) error {
	var arr []model.Message
	if err := json.Unmarshal(data, &arr); err == nil {
		p.Messages = arr
		return nil
	}

	var wrapped struct {
		Messages []model.Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	p.Messages = wrapped.Messages
	return nil
}
