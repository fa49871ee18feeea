// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the client:
//
//   - Chat: a conversation summary (id, title, last activity)
//   - Message: one chat message (role, content, timestamp) plus the
//     transient pending flag for optimistic sends
//   - Session/User: the authenticated session cached in the session store
//
// All wire-facing fields carry the server's JSON names (`_id`, `title`,
// `lastActivity`, ...). The package holds no behavior beyond formatting
// and identity helpers; synchronization rules live in internal/session.
package model
