// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	tr "github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
	"github.com/spf13/afero"
)

const (
	fileMode  = 0o644
	dirMode   = 0o755
	kilobyte  = 1024.0
	separator = 60
)

// Tools binds the file tools to a filesystem.
type Tools struct {
	fs afero.Fs
}

// Register adds the file tools to r, using the filesystem returned by FsFactory.
func Register(r *tr.Registry) {
	t := &Tools{fs: FsFactory()}

	r.Register(agent.ToolDefinition{
		Name: tr.ReadFile,
		Description: "Read a file from the real filesystem. " +
			"Returns a header with size and line count followed by the content.",
		Parameters: tr.Object(map[string]tr.Property{
			"file_path": tr.String("Relative or absolute path of the file to read"),
		}, "file_path"),
	}, t.read)

	r.Register(agent.ToolDefinition{
		Name: tr.WriteFile,
		Description: "Write content to a file on the real filesystem, creating parent directories as needed. " +
			"Existing files are overwritten.",
		Parameters: tr.Object(map[string]tr.Property{
			"file_path": tr.String("Relative or absolute path of the file to write"),
			"content":   tr.String("Full content of the file"),
		}, "file_path", "content"),
	}, t.write)

	r.Register(agent.ToolDefinition{
		Name:        tr.ListDirectory,
		Description: "List the directories and files in a directory of the real filesystem.",
		Parameters: tr.Object(map[string]tr.Property{
			"directory": tr.String("Directory to list, defaults to the current directory"),
		}),
	}, t.list)
}

func (t *Tools) write(ctx context.Context, args map[string]any) (agent.ToolResult, error) {
	path, err := tr.StringArg(args, "file_path")
	if err != nil {
		return agent.ToolResult{}, err
	}

	content, err := tr.StringArg(args, "content")
	if err != nil {
		return agent.ToolResult{}, err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := t.fs.MkdirAll(dir, dirMode); err != nil {
			return errorResult("failed to write file: %v", err), nil
		}
	}

	if err := afero.WriteFile(t.fs, path, []byte(content), fileMode); err != nil {
		return errorResult("failed to write file: %v", err), nil
	}

	size := int64(len(content))
	if info, err := t.fs.Stat(path); err == nil {
		size = info.Size()
	}

	ctxlog.Debug(ctx, "wrote file", "path", path, "bytes", size)

	return agent.ToolResult{
		Content: fmt.Sprintf("✅ Successfully wrote file: %s (%.2f KB)", path, float64(size)/kilobyte),
		Files:   map[string]string{path: content},
	}, nil
}

func (t *Tools) read(_ context.Context, args map[string]any) (agent.ToolResult, error) {
	path, err := tr.StringArg(args, "file_path")
	if err != nil {
		return agent.ToolResult{}, err
	}

	data, err := afero.ReadFile(t.fs, path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errorResult("file '%s' does not exist", path), nil
	case errors.Is(err, fs.ErrPermission):
		return errorResult("no permission to read file '%s'", path), nil
	case err != nil:
		return errorResult("%v", err), nil
	case !utf8.Valid(data):
		return errorResult("file '%s' is not a text file or is not UTF-8 encoded", path), nil
	}

	content := string(data)
	header := fmt.Sprintf("File: %s (%.2f KB, %d lines)\n%s\n",
		path, float64(len(data))/kilobyte, len(strings.Split(content, "\n")), strings.Repeat("=", separator))

	return agent.ToolResult{Content: header + content}, nil
}

func (t *Tools) list(_ context.Context, args map[string]any) (agent.ToolResult, error) {
	dir, err := tr.OptionalStringArg(args, "directory", ".")
	if err != nil {
		return agent.ToolResult{}, err
	}

	entries, err := afero.ReadDir(t.fs, dir)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errorResult("directory '%s' does not exist", dir), nil
	case errors.Is(err, fs.ErrPermission):
		return errorResult("no permission to access directory '%s'", dir), nil
	case err != nil:
		return errorResult("%v", err), nil
	}

	var dirs, files []string

	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, "📁 "+e.Name()+"/")
			continue
		}

		files = append(files, "📄 "+e.Name())
	}

	sort.Strings(dirs)
	sort.Strings(files)

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Directory: %s\n", abs)
	fmt.Fprintf(&sb, "Total: %d directories, %d files\n\n", len(dirs), len(files))

	if len(dirs) > 0 {
		sb.WriteString("Directories:\n" + strings.Join(dirs, "\n") + "\n\n")
	}

	if len(files) > 0 {
		sb.WriteString("Files:\n" + strings.Join(files, "\n"))
	}

	return agent.ToolResult{Content: sb.String()}, nil
}

func errorResult(format string, args ...any) agent.ToolResult {
	return agent.ToolResult{Content: agent.ToolErrorPrefix + fmt.Sprintf(format, args...)}
}
