// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	tr "github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == GOOSWindows {
		t.Skip("uses a POSIX shell")
	}

	t.Setenv("SHELL", binSh)
}

func TestRun(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name    string
		command string
		dir     string
		want    string
	}{
		{name: "stdout", command: "echo hello", want: "hello\n"},
		{name: "no output", command: "true", want: "Command executed successfully, no output"},
		{name: "stderr section", command: "echo out; echo err >&2", want: "out\n\n[stderr]\nerr\n"},
		{name: "exit status", command: "echo failing; exit 3", want: "failing\n\n[exit status 3]"},
		{name: "pipes", command: "printf 'b\\na\\n' | sort", want: "a\nb\n"},
		{name: "working dir", command: "pwd", dir: "/", want: "/\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Run(context.Background(), tt.command, tt.dir))
		})
	}
}

func TestRun_Timeout(t *testing.T) {
	skipOnWindows(t)

	stubs := gostub.Stub(&Timeout, 100*time.Millisecond)
	defer stubs.Reset()

	start := time.Now()
	out := Run(context.Background(), "sleep 5", "")

	assert.Equal(t, "❌ Error: command timed out after 100ms", out)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecuteTool(t *testing.T) {
	skipOnWindows(t)

	r := tr.New(Register)

	res, err := r.Execute(context.Background(), agent.ToolCall{
		Name: tr.ExecuteCommand,
		Args: map[string]any{"command": "echo via registry"},
	})
	require.NoError(t, err)
	assert.Equal(t, "via registry\n", res.Content)

	_, err = r.Execute(context.Background(), agent.ToolCall{
		Name: tr.ExecuteCommand,
		Args: map[string]any{"command": ""},
	})
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestLimitedBuffer(t *testing.T) {
	b := &limitedBuffer{max: 4}

	n, err := b.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "abcd\n... (output truncated)", b.String())
}
