// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{EnvOpenAIKey, EnvOpenAIBaseURL, EnvOpenAIAPIBase, EnvGoogleKey, EnvGeminiKey} {
		t.Setenv(k, "")
	}
}

func TestResolve(t *testing.T) {
	tcs := []struct {
		name     string
		env      map[string]string
		in       Settings
		provider string
		model    string
		baseURL  string
		err      error
	}{
		{
			name:     "openai detected from key",
			env:      map[string]string{EnvOpenAIKey: "sk-1"},
			provider: ProviderOpenAI,
			model:    DefaultOpenAIModel,
			baseURL:  defaultOpenAIBaseURL,
		},
		{
			name:     "gemini detected from key",
			env:      map[string]string{EnvGoogleKey: "g-1"},
			provider: ProviderGemini,
			model:    DefaultGeminiModel,
		},
		{
			name:     "gemini alternative key",
			env:      map[string]string{EnvGeminiKey: "g-1"},
			provider: ProviderGemini,
			model:    DefaultGeminiModel,
		},
		{
			name:     "openai wins when both keys are set",
			env:      map[string]string{EnvOpenAIKey: "sk-1", EnvGoogleKey: "g-1"},
			provider: ProviderOpenAI,
			model:    DefaultOpenAIModel,
			baseURL:  defaultOpenAIBaseURL,
		},
		{
			name:     "base url from env trimmed",
			env:      map[string]string{EnvOpenAIKey: "sk-1", EnvOpenAIBaseURL: "http://localhost:8080/v1/"},
			provider: ProviderOpenAI,
			model:    DefaultOpenAIModel,
			baseURL:  "http://localhost:8080/v1",
		},
		{
			name:     "explicit settings win",
			env:      map[string]string{EnvOpenAIKey: "sk-1"},
			in:       Settings{Provider: "OpenAI", Model: "deepseek-chat", BaseURL: "https://api.deepseek.com/v1"},
			provider: ProviderOpenAI,
			model:    "deepseek-chat",
			baseURL:  "https://api.deepseek.com/v1",
		},
		{
			name: "no keys",
			err:  ErrMissingAPIKey,
		},
		{
			name: "named provider without key",
			in:   Settings{Provider: ProviderGemini},
			err:  ErrMissingAPIKey,
		},
		{
			name: "unknown provider",
			in:   Settings{Provider: "claude", APIKey: "x"},
			err:  ErrUnknownProvider,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)

			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			s, err := Resolve(tc.in)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.provider, s.Provider)
			assert.Equal(t, tc.model, s.Model)
			assert.Equal(t, tc.baseURL, s.BaseURL)
			assert.NotEmpty(t, s.APIKey)
			assert.Equal(t, DefaultTimeout, s.Timeout)
		})
	}
}

func TestNewOpenAIClient(t *testing.T) {
	clearEnv(t)

	c, err := New(context.Background(), Settings{Provider: ProviderOpenAI, APIKey: "sk-1"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, c)
	require.NoError(t, c.Close())
}

func TestNewMissingKey(t *testing.T) {
	clearEnv(t)

	_, err := New(context.Background(), Settings{})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}
