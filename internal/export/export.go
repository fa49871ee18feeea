// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to local files.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/novalabs/nova-tui/internal/model"
	"github.com/novalabs/nova-tui/internal/util"
)

// timestampFormat is the human-readable timestamp used in transcripts.
const timestampFormat = "Jan 2, 2006 3:04:05 PM"

// ErrNoMessages is returned when a transcript would be empty.
var ErrNoMessages = errors.New("chat has no messages to export")

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the exportable snapshot of a chat.
type Transcript struct {
	ChatName   string
	ExportedAt time.Time
	Messages   []model.Message
}

// NewTranscript builds a transcript for export. Empty chats are refused
// so no zero-byte files land on disk.
func NewTranscript(chatName string, msgs []model.Message) (*Transcript, error) {
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}
	return &Transcript{
		ChatName:   chatName,
		ExportedAt: time.Now(),
		Messages:   msgs,
	}, nil
}

// =============================================================================
// EXPORTER INTERFACE
// =============================================================================

// Exporter renders a transcript in a target format.
type Exporter interface {
	// Export renders the transcript and returns the file content.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the extension for the format (e.g. ".json").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files are saved.
	// Default: current working directory
	OutputDir string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: "."}
}

// =============================================================================
// FILE WRITING
// =============================================================================

// WriteFile renders the transcript and writes it to a file named after
// the chat. Returns the output path.
func WriteFile(t *Transcript, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	filename := Filename(t, exporter)
	outputPath := filepath.Join(opts.OutputDir, filename)

	// RELIABILITY: Atomic write with fsync prevents partial transcripts
	// if the process dies mid-export.
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// Filename names an export file: the chat name with whitespace collapsed
// to underscores, then the export time in unix milliseconds.
func Filename(t *Transcript, exporter Exporter) string {
	name := sanitizeFilename(t.ChatName)
	if name == "" {
		name = "chat"
	}
	return name + "_" + strconv.FormatInt(t.ExportedAt.UnixMilli(), 10) + exporter.FileExtension()
}

// sanitizeFilename replaces characters that are unsafe in filenames.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			result = append(result, '_')
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}
	return string(result)
}

// formatTimestamp renders a message timestamp for transcripts. Messages
// that never got a server timestamp show as Unknown.
func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "Unknown"
	}
	return ts.Local().Format(timestampFormat)
}
