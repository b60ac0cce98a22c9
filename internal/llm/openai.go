// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	chatCompletionsPath  = "/chat/completions"
	maxAttempts          = 3
	maxErrorBody         = 2048
)

// ErrHTTPStatus is returned when the endpoint answers with a non-2xx status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Backoff returns the delay before retry attempt i (zero based).
var Backoff = func(i int) time.Duration {
	return time.Duration(500*(1<<i)) * time.Millisecond
}

var _ Client = (*OpenAI)(nil)

// OpenAI talks to an OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewOpenAI creates a client from resolved settings.
func NewOpenAI(s Settings) *OpenAI {
	hc := s.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: s.Timeout}
	}

	base := s.BaseURL
	if base == "" {
		base = defaultOpenAIBaseURL
	}

	return &OpenAI{
		apiKey:  s.APIKey,
		model:   s.Model,
		baseURL: base,
		http:    hc,
	}
}

// Close releases idle connections.
func (c *OpenAI) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type oaiFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type oaiToolCall struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Function oaiFunctionCall `json:"function"`
}

type oaiMessage struct {
	Role       string        `json:"role"`
	Content    *string       `json:"content"`
	ToolCalls  []oaiToolCall `json:"tool_calls,omitempty"`
	ToolCallID string        `json:"tool_call_id,omitempty"`
	Name       string        `json:"name,omitempty"`
}

type oaiFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type oaiTool struct {
	Type     string      `json:"type"`
	Function oaiFunction `json:"function"`
}

type oaiRequest struct {
	Model    string       `json:"model"`
	Messages []oaiMessage `json:"messages"`
	Tools    []oaiTool    `json:"tools,omitempty"`
}

type oaiResponse struct {
	Choices []struct {
		Message      oaiMessage `json:"message"`
		FinishReason string     `json:"finish_reason"`
	} `json:"choices"`
}

// Generate sends the conversation and returns the assistant reply.
func (c *OpenAI) Generate(ctx context.Context, req agent.ModelRequest) (agent.Message, error) {
	body, err := json.Marshal(c.request(req))
	if err != nil {
		return agent.Message{}, fmt.Errorf("marshal request: %w", err)
	}

	var out oaiResponse
	if err := c.postJSON(ctx, c.baseURL+chatCompletionsPath, body, &out); err != nil {
		return agent.Message{}, err
	}

	if len(out.Choices) == 0 {
		return agent.Message{}, ErrEmptyResponse
	}

	return fromOpenAI(out.Choices[0].Message), nil
}

func (c *OpenAI) request(req agent.ModelRequest) oaiRequest {
	r := oaiRequest{Model: c.model}

	if req.System != "" {
		r.Messages = append(r.Messages, oaiMessage{Role: "system", Content: ptr(req.System)})
	}

	for _, m := range req.Messages {
		r.Messages = append(r.Messages, toOpenAI(m))
	}

	for _, d := range req.Tools {
		r.Tools = append(r.Tools, oaiTool{
			Type: "function",
			Function: oaiFunction{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		})
	}

	return r
}

func toOpenAI(m agent.Message) oaiMessage {
	switch m.Role {
	case agent.RoleTool:
		return oaiMessage{Role: "tool", Content: ptr(m.Content), ToolCallID: m.ToolCallID}
	case agent.RoleAssistant:
		out := oaiMessage{Role: "assistant"}
		if m.Content != "" || !m.HasToolCalls() {
			out.Content = ptr(m.Content)
		}

		for _, tc := range m.ToolCalls {
			out.ToolCalls = append(out.ToolCalls, oaiToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: oaiFunctionCall{
					Name:      tc.Name,
					Arguments: encodeArgs(tc.Args),
				},
			})
		}

		return out
	default:
		return oaiMessage{Role: "user", Content: ptr(m.Content)}
	}
}

func fromOpenAI(m oaiMessage) agent.Message {
	out := agent.Message{Role: agent.RoleAssistant}
	if m.Content != nil {
		out.Content = *m.Content
	}

	for _, tc := range m.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, agent.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: decodeArgs(tc.Function.Arguments),
		})
	}

	return out
}

// decodeArgs keeps the raw string when the arguments are not valid JSON.
func decodeArgs(raw string) any {
	if raw == "" {
		return map[string]any{}
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	return v
}

func encodeArgs(args any) string {
	switch v := args.(type) {
	case nil:
		return "{}"
	case string:
		return v
	}

	b, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}

	return string(b)
}

func (c *OpenAI) postJSON(ctx context.Context, url string, body []byte, out any) error {
	var lastErr error

	for i := range maxAttempts {
		if i > 0 {
			ctxlog.Debug(ctx, "retrying model request", "attempt", i+1, "error", lastErr)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(Backoff(i - 1)):
			}
		}

		retry, err := c.post(ctx, url, body, out)
		if err == nil {
			return nil
		}

		lastErr = err

		if !retry || ctx.Err() != nil {
			break
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return lastErr
}

func (c *OpenAI) post(ctx context.Context, url string, body []byte, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return true, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return retryable(resp.StatusCode),
			fmt.Errorf("%w: %d: %s", ErrHTTPStatus, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}

	return false, nil
}

func retryable(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

func ptr[T any](v T) *T {
	return &v
}
