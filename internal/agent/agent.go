// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agent

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
)

// DefaultRecursionLimit bounds the number of super-steps in a run.
const DefaultRecursionLimit = 1000

// ToolErrorPrefix starts the content of a tool message whose execution failed.
const ToolErrorPrefix = "❌ Error: "

var (
	// ErrRecursionLimit is returned when a run exceeds its super-step budget.
	ErrRecursionLimit = errors.New("recursion limit reached without hitting a stop condition")
	// ErrModel wraps failures returned by the model.
	ErrModel = errors.New("model call failed")
	// ErrNilModel is returned by New when no model is supplied.
	ErrNilModel = errors.New("agent requires a model")
)

// Model produces the next assistant message for a conversation.
type Model interface {
	Generate(ctx context.Context, req ModelRequest) (Message, error)
}

// ModelRequest is the input of one model call.
type ModelRequest struct {
	System   string
	Messages []Message
	Tools    []ToolDefinition
}

// ToolExecutor runs tool calls on behalf of the agent.
type ToolExecutor interface {
	Definitions() []ToolDefinition
	Execute(ctx context.Context, call ToolCall) (ToolResult, error)
}

// Agent runs the tool-calling loop.
type Agent struct {
	model          Model
	tools          ToolExecutor
	system         string
	recursionLimit int
	newID          func() string
}

// Option configures an Agent.
type Option func(*Agent)

// WithSystemPrompt sets the system prompt sent with every model call.
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		a.system = prompt
	}
}

// WithRecursionLimit sets the super-step budget. Values below 1 are ignored.
func WithRecursionLimit(limit int) Option {
	return func(a *Agent) {
		if limit > 0 {
			a.recursionLimit = limit
		}
	}
}

// WithIDGenerator sets the function used for tool calls that arrive without an ID.
func WithIDGenerator(fn func() string) Option {
	return func(a *Agent) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// New creates an Agent. tools may be nil for a tool-less agent.
func New(model Model, tools ToolExecutor, opts ...Option) (*Agent, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	a := &Agent{
		model:          model,
		tools:          tools,
		recursionLimit: DefaultRecursionLimit,
		newID:          uuid.NewString,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// RecursionLimit returns the configured super-step budget.
func (a *Agent) RecursionLimit() int {
	return a.recursionLimit
}

// Stream runs the agent on task. The human message is yielded first, then each
// assistant message followed by one tool message per executed call.
// The sequence ends when the model replies without tool calls, or with an
// error on recursion limit, model failure or context cancellation.
func (a *Agent) Stream(ctx context.Context, task string) iter.Seq2[StepEvent, error] {
	return func(yield func(StepEvent, error) bool) {
		var defs []ToolDefinition
		if a.tools != nil {
			defs = a.tools.Definitions()
		}

		files := make(map[string]string)
		human := Message{Role: RoleHuman, Content: task}
		history := []Message{human}

		if !yield(StepEvent{Message: human}, nil) {
			return
		}

		steps := 0
		step := func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			steps++
			if steps > a.recursionLimit {
				return fmt.Errorf("%w: limit %d", ErrRecursionLimit, a.recursionLimit)
			}

			return nil
		}

		for {
			if err := step(); err != nil {
				yield(StepEvent{}, err)
				return
			}

			reply, err := a.model.Generate(ctx, ModelRequest{
				System:   a.system,
				Messages: history,
				Tools:    defs,
			})
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					err = ctxErr
				} else {
					err = errors.Join(ErrModel, err)
				}

				yield(StepEvent{}, err)

				return
			}

			reply.Role = RoleAssistant
			for i := range reply.ToolCalls {
				if reply.ToolCalls[i].ID == "" {
					reply.ToolCalls[i].ID = a.newID()
				}
			}

			history = append(history, reply)

			if !yield(StepEvent{Message: reply, Files: snapshot(files)}, nil) {
				return
			}

			if !reply.HasToolCalls() {
				return
			}

			if err := step(); err != nil {
				yield(StepEvent{}, err)
				return
			}

			for _, call := range reply.ToolCalls {
				msg := a.execute(ctx, call, files)
				history = append(history, msg)

				if !yield(StepEvent{Message: msg, Files: snapshot(files)}, nil) {
					return
				}
			}
		}
	}
}

func (a *Agent) execute(ctx context.Context, call ToolCall, files map[string]string) Message {
	msg := Message{Role: RoleTool, ToolCallID: call.ID, Name: call.Name}

	if a.tools == nil {
		msg.Content = ToolErrorPrefix + "no tools are registered"
		return msg
	}

	res, err := a.tools.Execute(ctx, call)
	if err != nil {
		ctxlog.Debug(ctx, "tool execution failed", "tool", call.Name, "error", err)

		msg.Content = ToolErrorPrefix + err.Error()

		return msg
	}

	for k, v := range res.Files {
		files[k] = v
	}

	msg.Content = res.Content

	return msg
}
