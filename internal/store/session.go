// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/novalabs/nova-tui/internal/model"
)

// =============================================================================
// SESSION PERSISTENCE
// =============================================================================

// SaveSession persists an authenticated session. The token and user are
// written together; if the user record cannot be stored the token is
// removed again so the store never holds a half session.
func SaveSession(s Store, session *model.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.Set(KeyToken, session.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.Set(KeyUser, string(userJSON)); err != nil {
		s.Delete(KeyToken)
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// LoadSession restores a previously saved session. It returns
// ErrNoSession when either half is missing, and clears whatever is
// stored if the user record is unreadable.
func LoadSession(s Store) (*model.Session, error) {
	token, err := s.Get(KeyToken)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	userJSON, err := s.Get(KeyUser)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		ClearSession(s)
		return nil, ErrNoSession
	}

	return &model.Session{User: user, Token: token}, nil
}

// ClearSession removes all session state, including the remembered
// active chat.
func ClearSession(s Store) {
	s.Delete(KeyToken)
	s.Delete(KeyUser)
	s.Delete(KeyCurrentChat)
}
