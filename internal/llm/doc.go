// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package llm provides the model providers that drive the agent:
// an OpenAI-compatible chat completions client and a Google Gemini client.
//
// Use New to build a client from Settings. When no provider is named the
// provider is chosen from the API keys present in the environment.
package llm
