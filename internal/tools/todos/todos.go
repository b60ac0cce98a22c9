// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package todos implements the write_todos tool the agent uses to plan its work.
package todos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	tr "github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
)

// Todo statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Statuses lists the accepted statuses.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// ErrInvalidTodo is returned for a todo item that is not an object with content and a known status.
var ErrInvalidTodo = errors.New("invalid todo item")

// Item is one entry of the agent's task list.
type Item struct {
	Content string `json:"content"`
	Status  string `json:"status"`
}

// List holds the current task list. The whole list is replaced on every write.
type List struct {
	mu    sync.Mutex
	items []Item
}

// Items returns a copy of the current list.
func (l *List) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.items)
}

// Register adds write_todos backed by a fresh List.
func Register(r *tr.Registry) {
	RegisterList(r, &List{})
}

// RegisterList adds write_todos backed by l.
func RegisterList(r *tr.Registry, l *List) {
	r.Register(agent.ToolDefinition{
		Name: tr.WriteTodos,
		Description: "Create or replace the task list for the current documentation run. " +
			"Send the complete list every time; items not included are dropped.",
		Parameters: tr.Object(map[string]tr.Property{
			"todos": tr.Array("The full task list", tr.Property(tr.Object(map[string]tr.Property{
				"content": tr.String("What needs to be done"),
				"status":  tr.Enum("Current state of the task", Statuses...),
			}, "content", "status"))),
		}, "todos"),
	}, l.write)
}

func (l *List) write(_ context.Context, args map[string]any) (agent.ToolResult, error) {
	items, err := Parse(args["todos"])
	if err != nil {
		return agent.ToolResult{}, err
	}

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()

	b, err := json.Marshal(items)
	if err != nil {
		return agent.ToolResult{}, err
	}

	return agent.ToolResult{Content: "Updated todo list to " + string(b)}, nil
}

// Parse validates a decoded todos argument.
func Parse(raw any) ([]Item, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: todos must be a list, got %T", tr.ErrInvalidArgument, raw)
	}

	items := make([]Item, 0, len(list))

	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w %d: expected an object, got %T", ErrInvalidTodo, i, entry)
		}

		content, _ := m["content"].(string)
		if content == "" {
			return nil, fmt.Errorf("%w %d: content is required", ErrInvalidTodo, i)
		}

		status, _ := m["status"].(string)
		if !slices.Contains(Statuses, status) {
			return nil, fmt.Errorf("%w %d: unknown status %q", ErrInvalidTodo, i, status)
		}

		items = append(items, Item{Content: content, Status: status})
	}

	return items, nil
}
