// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Nova chat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/novalabs/nova-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the chat API client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeUnauthorized
	ErrTypeInvalidResponse
	ErrTypeServer
)

// Sentinel errors for easy checking.
var (
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnauthorized = &ClientError{Type: ErrTypeUnauthorized, Message: "session is not authorized"}
)

// IsTimeout reports whether an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsUnauthorized reports whether an error indicates a rejected token.
func IsUnauthorized(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnauthorized
	}
	return errors.Is(err, ErrUnauthorized)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the chat API client.
type ClientConfig struct {
	// BaseURL is the chat API base URL (default: http://localhost:3001)
	BaseURL string

	// RegisterTimeout bounds the registration call. Registration is the
	// only call with an explicit client-side timeout; polling and refresh
	// calls rely on their caller's context. (default: 10s)
	RegisterTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:         "http://localhost:3001",
		RegisterTimeout: 10 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Nova chat backend. Every call
// except Login and Register carries the session's bearer token.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:3001"
	}
	if config.RegisterTimeout == 0 {
		config.RegisterTimeout = 10 * time.Second
	}

	return &Client{
		config: config,
		// No global timeout: background polling calls are bounded by
		// their contexts, not the transport.
		httpClient: &http.Client{},
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	req := loginRequest{Email: email, Password: password}

	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", req, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "login response missing token"}
	}
	return &result, nil
}

// Register creates a new account. The call is bounded by the configured
// registration timeout and reports expiry as a distinct timed-out failure.
func (c *Client) Register(ctx context.Context, firstname, lastname, email, password string) (*AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RegisterTimeout)
	defer cancel()

	req := registerRequest{
		Fullname: model.Fullname{Firstname: firstname, Lastname: lastname},
		Email:    email,
		Password: password,
	}

	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", req, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "register response missing token"}
	}
	return &result, nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// ListChats fetches all chats for the session.
func (c *Client) ListChats(ctx context.Context, token string) ([]model.Chat, error) {
	var payload chatListPayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/chats", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Chats, nil
}

// CreateChat creates a chat with the given title and returns the
// server-assigned chat.
func (c *Client) CreateChat(ctx context.Context, token, title string) (*model.Chat, error) {
	req := titleRequest{Title: title}

	var chat model.Chat
	if err := c.doJSON(ctx, http.MethodPost, "/api/chats", token, req, &chat); err != nil {
		return nil, err
	}
	if chat.ID == "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "create response missing chat id"}
	}
	if chat.Title == "" {
		chat.Title = title
	}
	return &chat, nil
}

// RenameChat updates a chat's title and returns the chat as the server
// stored it. Callers must reconcile against the returned title rather than
// assuming the local edit was accepted verbatim.
func (c *Client) RenameChat(ctx context.Context, token, chatID, title string) (*model.Chat, error) {
	req := titleRequest{Title: title}

	var payload renameResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/chats/"+chatID, token, req, &payload); err != nil {
		return nil, err
	}
	return &payload.Chat, nil
}

// DeleteChat removes a chat.
func (c *Client) DeleteChat(ctx context.Context, token, chatID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/chats/"+chatID, token, nil, nil)
}

// =============================================================================
// MESSAGE OPERATIONS
// =============================================================================

// ListMessages fetches the full message list for a chat.
func (c *Client) ListMessages(ctx context.Context, token, chatID string) ([]model.Message, error) {
	var payload messageListPayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/chats/"+chatID+"/messages", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

// SendMessage appends a user message to a chat. The response is the
// server's authoritative message list, including the persisted user
// message and any generated assistant reply.
func (c *Client) SendMessage(ctx context.Context, token, chatID, content string) ([]model.Message, error) {
	req := sendRequest{ChatID: chatID, Content: content}

	var payload messageListPayload
	if err := c.doJSON(ctx, http.MethodPost, "/api/chats/"+chatID+"/messages", token, req, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// doJSON issues a JSON request and decodes the response into out (out may
// be nil for calls whose body is irrelevant). Server-reported error
// messages are surfaced through the ClientError taxonomy.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The backend reports failures as {"message": "..."}.
		var serverErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Message != "" {
			return &ClientError{Type: ErrTypeServer, Message: serverErr.Message}
		}
		return &ClientError{Type: ErrTypeServer, Message: method + " " + path + " failed: " + resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}
