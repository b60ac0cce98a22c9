// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	tests := []struct {
		name    string
		options *slog.HandlerOptions
		opts    []Option
	}{
		{
			name:    "with nil options",
			options: nil,
		},
		{
			name: "with custom options",
			options: &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			},
		},
		{
			name:    "with functional options",
			options: &slog.HandlerOptions{},
			opts: []Option{
				WithDestinationWriter(&bytes.Buffer{}),
				WithAutoColour(),
				WithOutputEmptyAttrs(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPrettyHandler(tt.options, tt.opts...)
			require.NotNil(t, handler)
			assert.NotNil(t, handler.h)
			assert.NotNil(t, handler.b)
			assert.NotNil(t, handler.m)
			assert.NotNil(t, handler.json)
			assert.NotNil(t, handler.writer)
		})
	}
}

func TestPrettyHandler_AutoColourOffForBuffers(t *testing.T) {
	handler := NewPrettyHandler(nil, WithDestinationWriter(&bytes.Buffer{}), WithAutoColour())
	assert.False(t, handler.colour)
	assert.True(t, handler.json.DisabledColor)
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf))
	record := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), slog.LevelWarn, "tool failed", 0)
	record.AddAttrs(slog.String("tool", "ripgrep_search"))

	require.NoError(t, handler.Handle(context.Background(), record))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[03:04:05.000] WARN: tool failed "), out)
	assert.Contains(t, out, `"tool"`)
	assert.Contains(t, out, `"ripgrep_search"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_HandleWithoutAttrs(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(nil, WithDestinationWriter(&buf))
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)

	require.NoError(t, handler.Handle(context.Background(), record))
	assert.NotContains(t, buf.String(), "{")
}

func TestPrettyHandler_WithAttrsKeepsWriter(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf))).With("run", "abc")
	logger.Warn("step")

	assert.Contains(t, buf.String(), `"run"`)
	assert.Contains(t, buf.String(), `"abc"`)
}

func TestPrettyHandler_ReplaceAttrDropsTime(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}, WithDestinationWriter(&buf))

	record := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	require.NoError(t, handler.Handle(context.Background(), record))
	assert.True(t, strings.HasPrefix(buf.String(), "ERROR: boom"), buf.String())
}
