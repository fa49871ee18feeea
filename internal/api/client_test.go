// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	return client, srv
}

func TestLogin(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		// Auth endpoints must not carry a bearer token.
		require.Empty(t, r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jo@example.com", req["email"])
		assert.Equal(t, "hunter22", req["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]string{"_id": "u1", "email": "jo@example.com"},
			"token": "tok-123",
		})
	}))
	defer srv.Close()

	result, err := client.Login(context.Background(), "jo@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "jo@example.com", result.User.Email)
}

func TestLoginRejectsMissingToken(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"email": "jo@example.com"},
		})
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "jo@example.com", "x")
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeInvalidResponse, clientErr.Type)
}

func TestLoginServerErrorMessage(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "jo@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestRegisterTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	srv := httptest.NewServer(slow)
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{
		BaseURL:         srv.URL,
		RegisterTimeout: 20 * time.Millisecond,
	})

	_, err := client.Register(context.Background(), "Ada", "Lovelace", "ada@example.com", "secret1")
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "expected timeout error, got %v", err)
}

func TestListChatsSendsBearerToken(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]string{
			{"_id": "c1", "title": "First"},
			{"_id": "c2", "title": "Second"},
		})
	}))
	defer srv.Close()

	chats, err := client.ListChats(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "c1", chats[0].ID)
	assert.Equal(t, "Second", chats[1].Title)
}

func TestListChatsWrappedShape(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"chats": []map[string]string{{"_id": "c1", "title": "Only"}},
		})
	}))
	defer srv.Close()

	chats, err := client.ListChats(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "Only", chats[0].Title)
}

func TestCreateChat(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "New Chat", req["title"])

		json.NewEncoder(w).Encode(map[string]string{"_id": "c9", "title": "New Chat"})
	}))
	defer srv.Close()

	chat, err := client.CreateChat(context.Background(), "tok", "New Chat")
	require.NoError(t, err)
	assert.Equal(t, "c9", chat.ID)
	assert.Equal(t, "New Chat", chat.Title)
}

func TestCreateChatMissingID(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"title": "New Chat"})
	}))
	defer srv.Close()

	_, err := client.CreateChat(context.Background(), "tok", "New Chat")
	require.Error(t, err)
}

func TestRenameChatReturnsServerTitle(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/chats/c1", r.URL.Path)

		// Server may normalize the title; the client must report what was
		// actually stored.
		json.NewEncoder(w).Encode(map[string]any{
			"chat": map[string]string{"_id": "c1", "title": "Trimmed Title"},
		})
	}))
	defer srv.Close()

	chat, err := client.RenameChat(context.Background(), "tok", "c1", "  Trimmed Title  ")
	require.NoError(t, err)
	assert.Equal(t, "Trimmed Title", chat.Title)
}

func TestDeleteChat(t *testing.T) {
	var gotPath string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, client.DeleteChat(context.Background(), "tok", "c1"))
	assert.Equal(t, "DELETE /api/chats/c1", gotPath)
}

func TestSendMessage(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chats/c1/messages", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "c1", req["chatId"])
		assert.Equal(t, "Hello", req["content"])

		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{
				{"_id": "m1", "role": "user", "content": "Hello"},
				{"_id": "m2", "role": "assistant", "content": "Hi there"},
			},
		})
	}))
	defer srv.Close()

	msgs, err := client.SendMessage(context.Background(), "tok", "c1", "Hello")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "assistant", string(msgs[1].Role))
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := client.ListChats(context.Background(), "expired")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestConnectionFailure(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1"})

	_, err := client.ListChats(context.Background(), "tok")
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeConnection, clientErr.Type)
}
