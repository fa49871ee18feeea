// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/novalabs/nova-tui/internal/model"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nova.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer s.Close()

	if _, err := s.Get(KeyTheme); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound for missing key, got %v", err)
	}

	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := s.Get(KeyTheme)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "dark" {
		t.Errorf("expected dark, got %q", value)
	}

	// Overwrite
	if err := s.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}
	value, _ = s.Get(KeyTheme)
	if value != "light" {
		t.Errorf("expected light after overwrite, got %q", value)
	}

	if err := s.Delete(KeyTheme); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(KeyTheme); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}

	// Deleting a missing key is not an error
	if err := s.Delete("never-set"); err != nil {
		t.Errorf("Delete of missing key failed: %v", err)
	}
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nova.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := s.Set(KeyCurrentChat, "chat-42"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	value, err := reopened.Get(KeyCurrentChat)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if value != "chat-42" {
		t.Errorf("expected chat-42, got %q", value)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	session := &model.Session{
		User: model.User{
			ID:       "u1",
			Email:    "ada@example.com",
			Fullname: model.Fullname{Firstname: "Ada", Lastname: "Lovelace"},
		},
		Token: "tok-abc",
	}

	if err := SaveSession(s, session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := LoadSession(s)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded.Token != "tok-abc" {
		t.Errorf("expected token tok-abc, got %q", loaded.Token)
	}
	if loaded.User.Email != "ada@example.com" {
		t.Errorf("expected stored email, got %q", loaded.User.Email)
	}
	if loaded.User.Fullname.Firstname != "Ada" {
		t.Errorf("expected stored firstname, got %q", loaded.User.Fullname.Firstname)
	}
}

func TestLoadSessionMissing(t *testing.T) {
	s := NewMemoryStore()

	if _, err := LoadSession(s); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession from empty store, got %v", err)
	}

	// Token without a user record is not a session.
	s.Set(KeyToken, "orphan")
	if _, err := LoadSession(s); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession for token without user, got %v", err)
	}
}

func TestLoadSessionCorruptUser(t *testing.T) {
	s := NewMemoryStore()
	s.Set(KeyToken, "tok")
	s.Set(KeyUser, "{not json")

	if _, err := LoadSession(s); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession for corrupt user record, got %v", err)
	}

	// Corrupt state is cleared so the next launch starts clean.
	if _, err := s.Get(KeyToken); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected token cleared after corrupt user, got %v", err)
	}
}

func TestClearSessionKeepsTheme(t *testing.T) {
	s := NewMemoryStore()
	s.Set(KeyToken, "tok")
	s.Set(KeyUser, "{}")
	s.Set(KeyCurrentChat, "c1")
	s.Set(KeyTheme, "light")

	ClearSession(s)

	for _, key := range []string{KeyToken, KeyUser, KeyCurrentChat} {
		if _, err := s.Get(key); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected %s cleared, got %v", key, err)
		}
	}

	// Theme is a device preference, not session state.
	if value, err := s.Get(KeyTheme); err != nil || value != "light" {
		t.Errorf("expected theme preserved, got %q, %v", value, err)
	}
}
