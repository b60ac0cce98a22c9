// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agent

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// Role identifies who produced a message.
type Role string

const (
	// RoleHuman is the task given to the agent.
	RoleHuman Role = "human"
	// RoleAssistant is a model reply, possibly carrying tool calls.
	RoleAssistant Role = "ai"
	// RoleTool is the result of one tool call.
	RoleTool Role = "tool"
)

// Kind returns the display name of the message type for the role.
func (r Role) Kind() string {
	switch r {
	case RoleHuman:
		return "HumanMessage"
	case RoleAssistant:
		return "AIMessage"
	case RoleTool:
		return "ToolMessage"
	default:
		return "Message"
	}
}

// ToolCall is a single tool invocation requested by the model.
// Args is usually a map[string]any decoded from JSON, but providers may hand
// back a raw string when the arguments could not be decoded.
type ToolCall struct {
	ID   string
	Name string
	Args any
}

// Message is one entry of the conversation.
type Message struct {
	Role      Role
	Content   string
	ToolCalls []ToolCall
	// ToolCallID and Name are set on tool messages.
	ToolCallID string
	Name       string
}

// HasToolCalls reports whether the message requests tool execution.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

const banner = 33

// String renders the message for debug output.
func (m Message) String() string {
	var sb strings.Builder

	title := " " + m.Role.Kind() + " "
	pad := strings.Repeat("=", banner)
	sb.WriteString(pad + title + pad + "\n")

	if m.Name != "" {
		fmt.Fprintf(&sb, "Name: %s\n", m.Name)
	}

	if m.Content != "" {
		sb.WriteString("\n" + m.Content + "\n")
	}

	if m.HasToolCalls() {
		sb.WriteString("Tool Calls:\n")

		for _, tc := range m.ToolCalls {
			fmt.Fprintf(&sb, "  %s (%s)\n", tc.Name, tc.ID)

			if b, err := json.MarshalIndent(tc.Args, "    ", "  "); err == nil {
				sb.WriteString("    " + string(b) + "\n")
			} else {
				fmt.Fprintf(&sb, "    %v\n", tc.Args)
			}
		}
	}

	return sb.String()
}

// StepEvent is one observation of the run: the message produced by the step,
// plus the artifacts written so far.
type StepEvent struct {
	Message Message
	// Files maps a written path to its content. Nil until a tool records a file.
	Files map[string]string
}

// ToolDefinition describes a tool to the model.
// Parameters is a JSON schema object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolResult is the outcome of a tool execution.
type ToolResult struct {
	Content string
	// Files holds artifacts written by the tool, keyed by path.
	Files map[string]string
}

func snapshot(files map[string]string) map[string]string {
	if len(files) == 0 {
		return nil
	}

	return maps.Clone(files)
}
