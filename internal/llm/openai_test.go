// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolCallReply = `{
  "choices": [{
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": null,
      "tool_calls": [
        {"id": "call_1", "type": "function", "function": {"name": "read_real_file", "arguments": "{\"file_path\":\"main.go\"}"}},
        {"id": "call_2", "type": "function", "function": {"name": "execute_command", "arguments": "not json"}}
      ]
    }
  }]
}`

func newTestOpenAI(url string) *OpenAI {
	return NewOpenAI(Settings{APIKey: "sk-test", Model: "gpt-test", BaseURL: url, Timeout: 5 * time.Second})
}

func TestOpenAIGenerate(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, chatCompletionsPath, r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(toolCallReply))
	}))
	defer srv.Close()

	c := newTestOpenAI(srv.URL)
	defer c.Close() //nolint:errcheck

	msg, err := c.Generate(context.Background(), agent.ModelRequest{
		System: "be helpful",
		Messages: []agent.Message{
			{Role: agent.RoleHuman, Content: "document this"},
			{Role: agent.RoleAssistant, ToolCalls: []agent.ToolCall{
				{ID: "a", Name: "list_real_directory", Args: map[string]any{"directory": "."}},
			}},
			{Role: agent.RoleTool, Content: "Directory: .", ToolCallID: "a", Name: "list_real_directory"},
		},
		Tools: []agent.ToolDefinition{
			{Name: "read_real_file", Description: "read", Parameters: map[string]any{"type": "object"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, agent.RoleAssistant, msg.Role)
	assert.Empty(t, msg.Content)
	require.Len(t, msg.ToolCalls, 2)
	assert.Equal(t, "call_1", msg.ToolCalls[0].ID)
	assert.Equal(t, "read_real_file", msg.ToolCalls[0].Name)
	assert.Equal(t, map[string]any{"file_path": "main.go"}, msg.ToolCalls[0].Args)
	assert.Equal(t, "not json", msg.ToolCalls[1].Args)

	assert.Equal(t, "gpt-test", got["model"])

	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 4)

	roles := make([]string, 0, len(msgs))
	for _, m := range msgs {
		roles = append(roles, m.(map[string]any)["role"].(string))
	}

	assert.Equal(t, []string{"system", "user", "assistant", "tool"}, roles)

	assistant := msgs[2].(map[string]any)
	calls := assistant["tool_calls"].([]any)
	fn := calls[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, `{"directory":"."}`, fn["arguments"])
	assert.Equal(t, "a", msgs[3].(map[string]any)["tool_call_id"])

	tools := got["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Equal(t, "function", tools[0].(map[string]any)["type"])
}

func TestOpenAIRetries(t *testing.T) {
	stubs := gostub.Stub(&Backoff, func(int) time.Duration { return 0 })
	defer stubs.Reset()

	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"done"}}]}`))
	}))
	defer srv.Close()

	msg, err := newTestOpenAI(srv.URL).Generate(context.Background(), agent.ModelRequest{
		Messages: []agent.Message{{Role: agent.RoleHuman, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "done", msg.Content)
	assert.EqualValues(t, 3, calls.Load())
}

func TestOpenAIErrors(t *testing.T) {
	stubs := gostub.Stub(&Backoff, func(int) time.Duration { return 0 })
	defer stubs.Reset()

	tcs := []struct {
		name  string
		code  int
		body  string
		calls int32
		err   error
	}{
		{name: "client error is not retried", code: http.StatusBadRequest, body: "bad", calls: 1, err: ErrHTTPStatus},
		{name: "server error exhausts attempts", code: http.StatusBadGateway, calls: maxAttempts, err: ErrHTTPStatus},
		{name: "empty choices", code: http.StatusOK, body: `{"choices":[]}`, calls: 1, err: ErrEmptyResponse},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestOpenAI(srv.URL).Generate(context.Background(), agent.ModelRequest{
				Messages: []agent.Message{{Role: agent.RoleHuman, Content: "hi"}},
			})
			require.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.calls, calls.Load())
		})
	}
}

func TestOpenAICancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOpenAI(srv.URL).Generate(ctx, agent.ModelRequest{
		Messages: []agent.Message{{Role: agent.RoleHuman, Content: "hi"}},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecodeArgs(t *testing.T) {
	assert.Equal(t, map[string]any{}, decodeArgs(""))
	assert.Equal(t, map[string]any{"a": float64(1)}, decodeArgs(`{"a":1}`))
	assert.Equal(t, "{broken", decodeArgs("{broken"))
	assert.Equal(t, "{}", encodeArgs(nil))
	assert.Equal(t, "raw", encodeArgs("raw"))
}
