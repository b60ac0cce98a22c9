// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGeminiSchema(t *testing.T) {
	s := toGeminiSchema(toolregistry.Object(map[string]toolregistry.Property{
		"pattern":     toolregistry.String("regex"),
		"max_count":   toolregistry.Integer("limit"),
		"ignore_case": toolregistry.Boolean("case"),
		"status":      toolregistry.Enum("state", "pending", "completed"),
	}, "pattern"))

	require.NotNil(t, s)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"pattern"}, s.Required)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, genai.TypeString, s.Properties["pattern"].Type)
	assert.Equal(t, "regex", s.Properties["pattern"].Description)
	assert.Equal(t, genai.TypeInteger, s.Properties["max_count"].Type)
	assert.Equal(t, genai.TypeBoolean, s.Properties["ignore_case"].Type)
	assert.Equal(t, []string{"pending", "completed"}, s.Properties["status"].Enum)

	assert.Nil(t, toGeminiSchema(nil))
}

func TestToGeminiHistory(t *testing.T) {
	h := toGeminiHistory([]agent.Message{
		{Role: agent.RoleHuman, Content: "task"},
		{Role: agent.RoleAssistant, Content: "looking", ToolCalls: []agent.ToolCall{
			{ID: "1", Name: "read_real_file", Args: map[string]any{"file_path": "a"}},
			{ID: "2", Name: "read_real_file", Args: "raw"},
		}},
		{Role: agent.RoleTool, Content: "A", ToolCallID: "1", Name: "read_real_file"},
		{Role: agent.RoleTool, Content: "B", ToolCallID: "2", Name: "read_real_file"},
	})

	require.Len(t, h, 3)
	assert.Equal(t, geminiUserRole, h[0].Role)
	assert.Equal(t, geminiModelRole, h[1].Role)
	require.Len(t, h[1].Parts, 3)
	assert.Equal(t, genai.Text("looking"), h[1].Parts[0])
	assert.Equal(t, genai.FunctionCall{Name: "read_real_file", Args: map[string]any{"value": "raw"}}, h[1].Parts[2])

	assert.Equal(t, geminiUserRole, h[2].Role)
	require.Len(t, h[2].Parts, 2)
	assert.Equal(t, genai.FunctionResponse{Name: "read_real_file", Response: map[string]any{"content": "B"}}, h[2].Parts[1])
}

func TestFromGeminiResponse(t *testing.T) {
	msg, err := fromGeminiResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{
			Role: geminiModelRole,
			Parts: []genai.Part{
				genai.Text("plan"),
				genai.FunctionCall{Name: "write_todos", Args: map[string]any{"todos": []any{}}},
			},
		}}},
	})
	require.NoError(t, err)
	assert.Equal(t, agent.RoleAssistant, msg.Role)
	assert.Equal(t, "plan", msg.Content)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "write_todos", msg.ToolCalls[0].Name)
	assert.Empty(t, msg.ToolCalls[0].ID)

	_, err = fromGeminiResponse(&genai.GenerateContentResponse{})
	require.ErrorIs(t, err, ErrEmptyResponse)
}
