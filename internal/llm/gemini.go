// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"google.golang.org/api/option"
)

const (
	geminiUserRole  = "user"
	geminiModelRole = "model"
)

// ErrNoUserTurn is returned when the conversation does not end with a user or tool turn.
var ErrNoUserTurn = errors.New("conversation must end with a user or tool message")

var _ Client = (*Gemini)(nil)

// Gemini talks to Google Gemini through the generative-ai-go SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a client from resolved settings.
func NewGemini(ctx context.Context, s Settings) (*Gemini, error) {
	opts := []option.ClientOption{option.WithAPIKey(s.APIKey)}
	if s.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(s.HTTPClient))
	}

	if s.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(s.BaseURL))
	}

	c, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: c, model: s.Model}, nil
}

// Close closes the underlying SDK client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Generate replays the history into a chat session and sends the last turn.
func (g *Gemini) Generate(ctx context.Context, req agent.ModelRequest) (agent.Message, error) {
	m := g.client.GenerativeModel(g.model)

	if req.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	if len(req.Tools) > 0 {
		m.Tools = []*genai.Tool{{FunctionDeclarations: toFunctionDeclarations(req.Tools)}}
	}

	history := toGeminiHistory(req.Messages)
	if len(history) == 0 || history[len(history)-1].Role != geminiUserRole {
		return agent.Message{}, ErrNoUserTurn
	}

	cs := m.StartChat()
	cs.History = history[:len(history)-1]

	resp, err := cs.SendMessage(ctx, history[len(history)-1].Parts...)
	if err != nil {
		return agent.Message{}, fmt.Errorf("gemini send message: %w", err)
	}

	return fromGeminiResponse(resp)
}

func toFunctionDeclarations(defs []agent.ToolDefinition) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, d := range defs {
		out = append(out, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  toGeminiSchema(d.Parameters),
		})
	}

	return out
}

// toGeminiSchema converts the JSON schema subset produced by toolregistry.
func toGeminiSchema(s map[string]any) *genai.Schema {
	if len(s) == 0 {
		return nil
	}

	out := &genai.Schema{}

	switch s["type"] {
	case "object":
		out.Type = genai.TypeObject
	case "string":
		out.Type = genai.TypeString
	case "integer":
		out.Type = genai.TypeInteger
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	case "array":
		out.Type = genai.TypeArray
	}

	if d, ok := s["description"].(string); ok {
		out.Description = d
	}

	if props, ok := s["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, p := range props {
			if pm, ok := p.(map[string]any); ok {
				out.Properties[name] = toGeminiSchema(pm)
			}
		}
	}

	if items, ok := s["items"].(map[string]any); ok {
		out.Items = toGeminiSchema(items)
	}

	out.Required = stringSlice(s["required"])
	out.Enum = stringSlice(s["enum"])

	return out
}

func stringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, x := range vv {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}

		return out
	}

	return nil
}

// toGeminiHistory merges consecutive tool results into a single user turn.
func toGeminiHistory(msgs []agent.Message) []*genai.Content {
	var out []*genai.Content

	for _, m := range msgs {
		switch m.Role {
		case agent.RoleAssistant:
			c := &genai.Content{Role: geminiModelRole}
			if m.Content != "" {
				c.Parts = append(c.Parts, genai.Text(m.Content))
			}

			for _, tc := range m.ToolCalls {
				c.Parts = append(c.Parts, genai.FunctionCall{Name: tc.Name, Args: argsMap(tc.Args)})
			}

			out = append(out, c)
		case agent.RoleTool:
			part := genai.FunctionResponse{
				Name:     m.Name,
				Response: map[string]any{"content": m.Content},
			}

			if n := len(out); n > 0 && out[n-1].Role == geminiUserRole && isFunctionResponses(out[n-1]) {
				out[n-1].Parts = append(out[n-1].Parts, part)
				continue
			}

			out = append(out, &genai.Content{Role: geminiUserRole, Parts: []genai.Part{part}})
		default:
			out = append(out, &genai.Content{Role: geminiUserRole, Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}

	return out
}

func isFunctionResponses(c *genai.Content) bool {
	for _, p := range c.Parts {
		if _, ok := p.(genai.FunctionResponse); !ok {
			return false
		}
	}

	return len(c.Parts) > 0
}

func argsMap(args any) map[string]any {
	switch v := args.(type) {
	case map[string]any:
		return v
	case nil:
		return map[string]any{}
	default:
		return map[string]any{"value": v}
	}
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) (agent.Message, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return agent.Message{}, ErrEmptyResponse
	}

	out := agent.Message{Role: agent.RoleAssistant}

	for _, p := range resp.Candidates[0].Content.Parts {
		switch v := p.(type) {
		case genai.Text:
			out.Content += string(v)
		case genai.FunctionCall:
			out.ToolCalls = append(out.ToolCalls, agent.ToolCall{Name: v.Name, Args: v.Args})
		}
	}

	return out, nil
}
