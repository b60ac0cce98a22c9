// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Environment variables read by Resolve.
const (
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvOpenAIAPIBase = "OPENAI_API_BASE"
	EnvGoogleKey     = "GOOGLE_API_KEY"
	EnvGeminiKey     = "GEMINI_API_KEY"
)

// Default models.
const (
	DefaultOpenAIModel = "gpt-4o"
	DefaultGeminiModel = "gemini-1.5-pro"
	DefaultTimeout     = 5 * time.Minute
)

var (
	// ErrMissingAPIKey is returned when no API key is available for the provider.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrUnknownProvider is returned for provider names other than openai and gemini.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrEmptyResponse is returned when a provider answers without a message.
	ErrEmptyResponse = errors.New("model returned no choices")
)

// Client is a model that holds resources.
type Client interface {
	agent.Model
	io.Closer
}

// Settings selects and configures a provider. Empty fields are filled by Resolve.
type Settings struct {
	Provider   string
	Model      string
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Resolve fills empty settings from the environment and defaults.
func Resolve(s Settings) (Settings, error) {
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))

	if s.Provider == "" {
		switch {
		case envFirst(EnvOpenAIKey) != "":
			s.Provider = ProviderOpenAI
		case envFirst(EnvGoogleKey, EnvGeminiKey) != "":
			s.Provider = ProviderGemini
		default:
			return s, fmt.Errorf("%w: set %s or %s", ErrMissingAPIKey, EnvOpenAIKey, EnvGoogleKey)
		}
	}

	switch s.Provider {
	case ProviderOpenAI:
		if s.APIKey == "" {
			s.APIKey = envFirst(EnvOpenAIKey)
		}

		if s.BaseURL == "" {
			s.BaseURL = envFirst(EnvOpenAIBaseURL, EnvOpenAIAPIBase)
		}

		if s.BaseURL == "" {
			s.BaseURL = defaultOpenAIBaseURL
		}

		s.BaseURL = strings.TrimRight(s.BaseURL, "/")

		if s.Model == "" {
			s.Model = DefaultOpenAIModel
		}

		if s.APIKey == "" {
			return s, fmt.Errorf("%w: set %s", ErrMissingAPIKey, EnvOpenAIKey)
		}
	case ProviderGemini:
		if s.APIKey == "" {
			s.APIKey = envFirst(EnvGoogleKey, EnvGeminiKey)
		}

		if s.Model == "" {
			s.Model = DefaultGeminiModel
		}

		if s.APIKey == "" {
			return s, fmt.Errorf("%w: set %s", ErrMissingAPIKey, EnvGoogleKey)
		}
	default:
		return s, fmt.Errorf("%w: %s", ErrUnknownProvider, s.Provider)
	}

	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}

	return s, nil
}

// New builds a client for the resolved settings.
func New(ctx context.Context, s Settings) (Client, error) {
	s, err := Resolve(s)
	if err != nil {
		return nil, err
	}

	switch s.Provider {
	case ProviderGemini:
		return NewGemini(ctx, s)
	default:
		return NewOpenAI(s), nil
	}
}

func envFirst(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return v
		}
	}

	return ""
}
