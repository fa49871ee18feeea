// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// USER AND SESSION
// =============================================================================

// Fullname is the server's two-part name structure.
type Fullname struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// User is the authenticated user's profile as returned by the auth
// endpoints and cached in the session store.
type User struct {
	ID       string   `json:"_id,omitempty"`
	Email    string   `json:"email"`
	Fullname Fullname `json:"fullname,omitempty"`
}

// Session is the client-side authentication state. Invariant: the token
// and the user profile are both present or both absent - never partially
// set. The store layer enforces this on write and read.
type Session struct {
	User  User
	Token string
}
