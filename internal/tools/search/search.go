// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package search provides the ripgrep_search tool backed by the rg binary.
package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	tr "github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
)

const (
	rgBinary        = "rg"
	defaultMaxCount = 100
	rgNoMatchExit   = 1
)

// LookPath locates the rg binary. Replaced in tests.
var LookPath = exec.LookPath

// IgnoreGlobs are excluded from every search.
var IgnoreGlobs = []string{
	".git", ".venv", "venv", "env", "node_modules",
	"__pycache__", ".pytest_cache", ".mypy_cache",
	"dist", "build", "target", ".cache", "*.pyc",
	".DS_Store", "Thumbs.db", "*.log",
}

// InstallHint is returned when rg is not installed.
const InstallHint = agent.ToolErrorPrefix +
	"ripgrep (rg) is not installed. Install it with: brew install ripgrep (macOS) or apt install ripgrep (Linux)"

// Options are the arguments of one search.
type Options struct {
	Pattern    string
	Path       string
	FileType   string
	IgnoreCase bool
	MaxCount   int
}

// Register adds ripgrep_search to r.
func Register(r *tr.Registry) {
	r.Register(agent.ToolDefinition{
		Name: tr.RipgrepSearch,
		Description: "Search file contents with ripgrep. Results include file names and line numbers. " +
			"VCS, dependency, build and cache directories are ignored.",
		Parameters: tr.Object(map[string]tr.Property{
			"pattern":     tr.String("Regular expression to search for"),
			"path":        tr.String("File or directory to search, defaults to the current directory"),
			"file_type":   tr.String("Restrict to a ripgrep file type such as go, py, js or md"),
			"ignore_case": tr.Boolean("Search case-insensitively"),
			"max_count":   tr.Integer("Maximum number of matches per file and of result lines, defaults to 100"),
		}, "pattern"),
	}, execute)
}

func execute(ctx context.Context, args map[string]any) (agent.ToolResult, error) {
	var (
		opts Options
		err  error
	)

	if opts.Pattern, err = tr.StringArg(args, "pattern"); err != nil {
		return agent.ToolResult{}, err
	}

	if opts.Path, err = tr.OptionalStringArg(args, "path", "."); err != nil {
		return agent.ToolResult{}, err
	}

	if opts.FileType, err = tr.OptionalStringArg(args, "file_type", ""); err != nil {
		return agent.ToolResult{}, err
	}

	if opts.IgnoreCase, err = tr.BoolArg(args, "ignore_case", false); err != nil {
		return agent.ToolResult{}, err
	}

	if opts.MaxCount, err = tr.IntArg(args, "max_count", defaultMaxCount); err != nil {
		return agent.ToolResult{}, err
	}

	return agent.ToolResult{Content: Run(ctx, opts)}, nil
}

// Args builds the rg command line for opts.
func Args(opts Options) []string {
	if opts.MaxCount <= 0 {
		opts.MaxCount = defaultMaxCount
	}

	if opts.Path == "" {
		opts.Path = "."
	}

	args := []string{
		"--line-number",
		"--with-filename",
		"--no-heading",
		"--color", "never",
		"--max-count", strconv.Itoa(opts.MaxCount),
	}

	if opts.IgnoreCase {
		args = append(args, "--ignore-case")
	}

	if opts.FileType != "" {
		args = append(args, "--type", opts.FileType)
	}

	for _, g := range IgnoreGlobs {
		args = append(args, "--glob", "!"+g)
	}

	return append(args, "--", opts.Pattern, opts.Path)
}

// Run executes the search and renders the result for the agent.
func Run(ctx context.Context, opts Options) string {
	if opts.MaxCount <= 0 {
		opts.MaxCount = defaultMaxCount
	}

	rg, err := LookPath(rgBinary)
	if err != nil {
		return InstallHint
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, rg, Args(opts)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	ctxlog.Debug(ctx, "running ripgrep", "pattern", opts.Pattern, "path", opts.Path)

	err = cmd.Run()

	var exitErr *exec.ExitError

	switch {
	case errors.As(err, &exitErr) && exitErr.ExitCode() == rgNoMatchExit:
		return fmt.Sprintf("No matches found for '%s'", opts.Pattern)
	case err != nil:
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}

		return agent.ToolErrorPrefix + "search failed: " + msg
	}

	return format(stdout.String(), opts)
}

func format(out string, opts Options) string {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return fmt.Sprintf("No matches found for '%s'", opts.Pattern)
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) <= opts.MaxCount {
		return trimmed
	}

	return strings.Join(lines[:opts.MaxCount], "\n") +
		fmt.Sprintf("\n\n... (too many results, truncated to the first %d lines)", opts.MaxCount)
}
