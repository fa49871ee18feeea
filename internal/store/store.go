// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides local key/value persistence for the Nova client.
package store

import "errors"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrKeyNotFound is returned when a key has no stored value.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNoSession is returned when no complete session is stored.
	ErrNoSession = errors.New("no stored session")
)

// =============================================================================
// WELL-KNOWN KEYS
// =============================================================================

// Keys used by the client. The key names mirror the backend's field names
// so stored values read naturally next to API payloads.
const (
	KeyToken       = "token"
	KeyUser        = "user"
	KeyCurrentChat = "currentChatId"
	KeyTheme       = "theme"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a persistent string key/value store.
//
// Implementations must be safe for concurrent use. Get returns
// ErrKeyNotFound for missing keys; Delete of a missing key is not an
// error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
