// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders transcripts as structured JSON.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

type jsonTranscript struct {
	ChatName     string        `json:"chatName"`
	ExportDate   string        `json:"exportDate"`
	MessageCount int           `json:"messageCount"`
	Messages     []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Export renders the transcript as indented JSON.
func (e *JSONExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, errors.New("transcript is nil")
	}

	out := jsonTranscript{
		ChatName:     t.ChatName,
		ExportDate:   t.ExportedAt.Local().Format(timestampFormat),
		MessageCount: len(t.Messages),
		Messages:     make([]jsonMessage, 0, len(t.Messages)),
	}
	for _, msg := range t.Messages {
		out.Messages = append(out.Messages, jsonMessage{
			Role:      msg.Role.Label(),
			Content:   msg.Content,
			Timestamp: formatTimestamp(msg.Timestamp),
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
