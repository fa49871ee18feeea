// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/novalabs/nova-tui/internal/model"
)

func sampleTranscript(t *testing.T) *Transcript {
	t.Helper()
	transcript, err := NewTranscript("Project Notes", []model.Message{
		{
			Role:      model.RoleUser,
			Content:   "What is the deadline?",
			Timestamp: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			Role:    model.RoleAssistant,
			Content: "The deadline is Friday.",
		},
	})
	if err != nil {
		t.Fatalf("NewTranscript failed: %v", err)
	}
	transcript.ExportedAt = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	return transcript
}

func TestNewTranscriptRejectsEmpty(t *testing.T) {
	if _, err := NewTranscript("Empty", nil); !errors.Is(err, ErrNoMessages) {
		t.Errorf("expected ErrNoMessages, got %v", err)
	}
}

func TestJSONExport(t *testing.T) {
	content, err := NewJSONExporter().Export(sampleTranscript(t))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var got struct {
		ChatName     string `json:"chatName"`
		ExportDate   string `json:"exportDate"`
		MessageCount int    `json:"messageCount"`
		Messages     []struct {
			Role      string `json:"role"`
			Content   string `json:"content"`
			Timestamp string `json:"timestamp"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(content, &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if got.ChatName != "Project Notes" {
		t.Errorf("expected chat name, got %q", got.ChatName)
	}
	if got.MessageCount != 2 || len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages, got count=%d len=%d", got.MessageCount, len(got.Messages))
	}
	if got.Messages[0].Role != "User" || got.Messages[1].Role != "AI" {
		t.Errorf("unexpected role labels: %q, %q", got.Messages[0].Role, got.Messages[1].Role)
	}
	if got.Messages[1].Timestamp != "Unknown" {
		t.Errorf("expected Unknown for missing timestamp, got %q", got.Messages[1].Timestamp)
	}
}

func TestTextExport(t *testing.T) {
	content, err := NewTextExporter().Export(sampleTranscript(t))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	text := string(content)

	for _, want := range []string{
		"Chat: Project Notes\n",
		"Messages: 2\n",
		strings.Repeat("=", 50),
		"What is the deadline?",
		"AI (Unknown):\nThe deadline is Friday.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text export missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(text, "You (") {
		t.Errorf("expected user speaker You, got:\n%s", text)
	}
}

func TestFilename(t *testing.T) {
	transcript := sampleTranscript(t)

	name := Filename(transcript, NewJSONExporter())
	if !strings.HasPrefix(name, "Project_Notes_") {
		t.Errorf("expected underscored chat name prefix, got %q", name)
	}
	if !strings.HasSuffix(name, ".json") {
		t.Errorf("expected .json suffix, got %q", name)
	}

	transcript.ChatName = "a/b:c?"
	name = Filename(transcript, NewTextExporter())
	if strings.ContainsAny(name, "/:?") {
		t.Errorf("unsafe characters survived sanitization: %q", name)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(sampleTranscript(t), NewTextExporter(), &Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("file written outside output dir: %q", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export failed: %v", err)
	}
	if !strings.HasPrefix(string(content), "Chat: Project Notes\n") {
		t.Errorf("unexpected file content:\n%s", content)
	}
}
