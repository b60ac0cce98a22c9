// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell provides the execute_command tool, which runs a command line
// through the user's shell with a fixed timeout.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	tr "github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/C"         // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"         // Command switch for Unix-like shells
	winSystem32          = "System32"   // System32 is the directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // cmdExe is the name of the command interpreter executable on Windows.
	binSh                = "/bin/sh"    // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.

	maxOutputSize = 1024 * 1024
	waitDelay     = time.Second
)

// Timeout bounds every command.
var Timeout = 30 * time.Second

// ErrCommandNotFound is returned when the command line is empty.
var ErrCommandNotFound = errors.New("command not found")

// Register adds execute_command to r.
func Register(r *tr.Registry) {
	r.Register(agent.ToolDefinition{
		Name: tr.ExecuteCommand,
		Description: "Execute a shell command and return its output. Pipes and redirection are supported. " +
			fmt.Sprintf("Commands are killed after %s.", Timeout),
		Parameters: tr.Object(map[string]tr.Property{
			"command":     tr.String("The command line to execute"),
			"working_dir": tr.String("Directory to run the command in, defaults to the current directory"),
		}, "command"),
	}, execute)
}

func execute(ctx context.Context, args map[string]any) (agent.ToolResult, error) {
	command, err := tr.StringArg(args, "command")
	if err != nil {
		return agent.ToolResult{}, err
	}

	if command == "" {
		return agent.ToolResult{}, ErrCommandNotFound
	}

	dir, err := tr.OptionalStringArg(args, "working_dir", "")
	if err != nil {
		return agent.ToolResult{}, err
	}

	return agent.ToolResult{Content: Run(ctx, command, dir)}, nil
}

// Run executes command in dir and renders its output for the agent.
func Run(ctx context.Context, command, dir string) string {
	logger := ctxlog.Logger(ctx).With("tool", tr.ExecuteCommand)

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	switchArg := commandSwitchUnix
	if runtime.GOOS == GOOSWindows {
		switchArg = commandSwitchWindows
	}

	cmd := exec.CommandContext(ctx, defaultShell(ctx), switchArg, command)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	stdout := &limitedBuffer{max: maxOutputSize}
	stderr := &limitedBuffer{max: maxOutputSize}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.Debug("running command", "command", command, "cwd", dir)

	err := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("%scommand timed out after %s", agent.ToolErrorPrefix, Timeout)
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return agent.ToolErrorPrefix + err.Error()
	}

	out := stdout.String()
	if stderr.Len() > 0 {
		out += "\n[stderr]\n" + stderr.String()
	}

	if exitErr != nil {
		logger.Debug("command failed", "exitCode", exitErr.ExitCode())
		out += fmt.Sprintf("\n[exit status %d]", exitErr.ExitCode())
	}

	if out == "" {
		return "Command executed successfully, no output"
	}

	return out
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == GOOSWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		ctxlog.Debug(ctx, "Using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}

// limitedBuffer keeps the first max bytes written and discards the rest.
type limitedBuffer struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.buf.Len(); room < len(p) {
		b.truncated = true

		if room > 0 {
			b.buf.Write(p[:room])
		}

		return len(p), nil
	}

	return b.buf.Write(p)
}

func (b *limitedBuffer) Len() int {
	return b.buf.Len()
}

func (b *limitedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + "\n... (output truncated)"
	}

	return b.buf.String()
}
