// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package agenttest provides scripted models and tools for deterministic tests.
package agenttest

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
)

// ErrScriptExhausted is returned when the model is called more times than scripted.
var ErrScriptExhausted = errors.New("scripted model has no more replies")

// Model replays a fixed list of assistant messages.
type Model struct {
	mu       sync.Mutex
	replies  []agent.Message
	requests []agent.ModelRequest
	// Err, when set, is returned instead of the next reply.
	Err error
}

// NewModel returns a Model that replies with msgs in order.
func NewModel(msgs ...agent.Message) *Model {
	return &Model{replies: msgs}
}

// Generate implements agent.Model.
func (m *Model) Generate(ctx context.Context, req agent.ModelRequest) (agent.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req.Messages = slices.Clone(req.Messages)
	m.requests = append(m.requests, req)

	if err := ctx.Err(); err != nil {
		return agent.Message{}, err
	}

	if m.Err != nil {
		return agent.Message{}, m.Err
	}

	if len(m.replies) == 0 {
		return agent.Message{}, ErrScriptExhausted
	}

	next := m.replies[0]
	m.replies = m.replies[1:]

	return next, nil
}

// Requests returns the requests seen so far.
func (m *Model) Requests() []agent.ModelRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.requests)
}

// Close implements the provider client contract.
func (m *Model) Close() error { return nil }

// Handler executes a scripted tool.
type Handler func(ctx context.Context, args any) (agent.ToolResult, error)

// Tools is an agent.ToolExecutor backed by handlers keyed by tool name.
type Tools struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []agent.ToolCall
}

// NewTools returns an empty Tools.
func NewTools() *Tools {
	return &Tools{handlers: make(map[string]Handler)}
}

// Handle registers h under name.
func (t *Tools) Handle(name string, h Handler) *Tools {
	t.handlers[name] = h
	return t
}

// Definitions implements agent.ToolExecutor.
func (t *Tools) Definitions() []agent.ToolDefinition {
	defs := make([]agent.ToolDefinition, 0, len(t.handlers))
	for name := range t.handlers {
		defs = append(defs, agent.ToolDefinition{Name: name})
	}

	slices.SortFunc(defs, func(a, b agent.ToolDefinition) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})

	return defs
}

// ErrUnknownTool is returned for calls to unregistered names.
var ErrUnknownTool = errors.New("unknown tool")

// Execute implements agent.ToolExecutor.
func (t *Tools) Execute(ctx context.Context, call agent.ToolCall) (agent.ToolResult, error) {
	t.mu.Lock()
	t.calls = append(t.calls, call)
	h, ok := t.handlers[call.Name]
	t.mu.Unlock()

	if !ok {
		return agent.ToolResult{}, errors.Join(ErrUnknownTool, errors.New(call.Name))
	}

	return h(ctx, call.Args)
}

// Calls returns the tool calls executed so far.
func (t *Tools) Calls() []agent.ToolCall {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.calls)
}

// Call is shorthand for building a tool call.
func Call(id, name string, args any) agent.ToolCall {
	return agent.ToolCall{ID: id, Name: name, Args: args}
}

// Reply is shorthand for an assistant message.
func Reply(content string, calls ...agent.ToolCall) agent.Message {
	return agent.Message{Role: agent.RoleAssistant, Content: content, ToolCalls: calls}
}
