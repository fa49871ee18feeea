// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/novalabs/nova-tui/internal/model"
)

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextExporter renders transcripts as plain text.
type TextExporter struct{}

// NewTextExporter creates a plain-text exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export renders the transcript as readable plain text.
func (e *TextExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, errors.New("transcript is nil")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Chat: %s\n", t.ChatName)
	fmt.Fprintf(&b, "Exported: %s\n", t.ExportedAt.Local().Format(timestampFormat))
	fmt.Fprintf(&b, "Messages: %d\n", len(t.Messages))
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	for _, msg := range t.Messages {
		speaker := "AI"
		if msg.Role == model.RoleUser {
			speaker = "You"
		}
		fmt.Fprintf(&b, "%s (%s):\n%s\n\n", speaker, formatTimestamp(msg.Timestamp), msg.Content)
	}

	return []byte(b.String()), nil
}

// FileExtension returns the file extension for plain text.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}
