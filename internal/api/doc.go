// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Nova chat backend.
//
// The client covers the full REST surface: login/register, chat CRUD, and
// message list/append. Every call except the auth endpoints carries the
// session's bearer token. Failures map onto a small ClientError taxonomy
// (connection, timeout, unauthorized, invalid response, server) that the
// UI layer inspects with errors.Is/As.
//
// The backend's "array or wrapped array" list responses are normalized
// inside this package; callers always receive plain slices.
package api
