// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package toolregistry

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
)

var (
	// ErrUnknownTool is returned when a tool name is not registered.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArgument is returned when tool arguments are missing or have the wrong type.
	ErrInvalidArgument = errors.New("invalid argument")
)

var _ agent.ToolExecutor = (*Registry)(nil)

// Handler executes a tool with decoded arguments.
type Handler func(ctx context.Context, args map[string]any) (agent.ToolResult, error)

// Tool pairs a definition with its handler.
type Tool struct {
	Definition agent.ToolDefinition
	Handler    Handler
}

// RegisterFunc adds tools to a registry.
type RegisterFunc func(r *Registry)

// Registry holds the tools available to the agent.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// New creates a registry populated by the given register functions.
func New(fns ...RegisterFunc) *Registry {
	r := &Registry{tools: make(map[string]Tool)}

	for _, fn := range fns {
		fn(r)
	}

	return r
}

// Register adds a tool, replacing any tool of the same name.
func (r *Registry) Register(def agent.ToolDefinition, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools[def.Name] = Tool{Definition: def, Handler: h}
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Iter yields the registered tools sorted by name.
func (r *Registry) Iter() iter.Seq[Tool] {
	r.mu.RLock()
	tools := make([]Tool, 0, len(r.tools))

	for _, t := range r.tools {
		tools = append(tools, t)
	}
	r.mu.RUnlock()

	slices.SortFunc(tools, func(a, b Tool) int {
		return cmp.Compare(a.Definition.Name, b.Definition.Name)
	})

	return slices.Values(tools)
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.Len())
	for t := range r.Iter() {
		names = append(names, t.Definition.Name)
	}

	return names
}

// Definitions implements agent.ToolExecutor.
func (r *Registry) Definitions() []agent.ToolDefinition {
	defs := make([]agent.ToolDefinition, 0, r.Len())
	for t := range r.Iter() {
		defs = append(defs, t.Definition)
	}

	return defs
}

// Execute implements agent.ToolExecutor.
func (r *Registry) Execute(ctx context.Context, call agent.ToolCall) (agent.ToolResult, error) {
	r.mu.RLock()
	tool, ok := r.tools[call.Name]
	r.mu.RUnlock()

	if !ok {
		return agent.ToolResult{}, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}

	args, err := decodeArgs(call.Args)
	if err != nil {
		return agent.ToolResult{}, fmt.Errorf("%s: %w", call.Name, err)
	}

	ctxlog.Debug(ctx, "executing tool", "tool", call.Name, "id", call.ID)

	return tool.Handler(ctx, args)
}

func decodeArgs(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case string:
		if v == "" {
			return map[string]any{}, nil
		}

		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, errors.Join(ErrInvalidArgument, err)
		}

		return m, nil
	default:
		return nil, fmt.Errorf("%w: arguments must be an object, got %T", ErrInvalidArgument, raw)
	}
}
