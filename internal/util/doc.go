// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the nova-tui application:
// width-aware string truncation for terminal rendering and an atomic
// file-write primitive used by the export pipeline.
package util
