// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/i18n"
	tr "github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
	"github.com/matt-FFFFFF/codeviewx/internal/tools/todos"
)

// ErrMalformedArgs is returned when tool call arguments do not have the expected shape.
var ErrMalformedArgs = errors.New("malformed tool arguments")

const ellipsis = "..."

// summarizeResult returns the one-line summary for a tool result.
// ok is false for tools whose results are not shown.
func (r *Reporter) summarizeResult(tool, content string) (string, bool) {
	content = strings.TrimSpace(content)

	var (
		display string
		info    string
	)

	switch tool {
	case tr.WriteTodos, tr.WriteFile:
		return "", false
	case tr.ReadFile:
		display = r.t.T(i18n.Reading)
		info = r.readSummary(content)
	case tr.ListDirectory:
		display = r.t.T(i18n.Listing)
		info = r.listSummary(content)
	case tr.RipgrepSearch:
		display = r.t.T(i18n.Searching)
		info = r.searchSummary(content)
	case tr.ExecuteCommand:
		display = r.t.T(i18n.Executing)
		info = r.genericSummary(content, i18n.CommandSuccess)
	default:
		display = "🔧 " + tool
		info = r.genericSummary(content, i18n.ToolDone)
	}

	return display + ": " + info, true
}

func (r *Reporter) readSummary(content string) string {
	if content == "" {
		return r.t.T(i18n.ReadResultBare, 0)
	}

	lines := strings.Split(content, "\n")
	count := len(lines)

	head := strings.Join(lines[:min(2, count)], " ")
	short, truncated := truncate(head, 60)
	short = strings.TrimSpace(strings.ReplaceAll(short, "\n", " "))

	if short == "" {
		return r.t.T(i18n.ReadResultBare, count)
	}

	if truncated || count > 2 {
		short += ellipsis
	}

	return r.t.T(i18n.ReadResult, count, short)
}

func (r *Reporter) listSummary(content string) string {
	items := nonBlankLines(content)
	if len(items) == 0 {
		return r.t.T(i18n.ListResultBare, 0)
	}

	head := strings.Join(items[:min(3, len(items))], ", ")
	if len(items) > 3 {
		head += fmt.Sprintf(" ... (+%d)", len(items)-3)
	}

	return r.t.T(i18n.ListResult, len(items), head)
}

func (r *Reporter) searchSummary(content string) string {
	if content == "" {
		return r.t.T(i18n.NoMatches)
	}

	matches := nonBlankLines(content)
	if len(matches) == 0 {
		return r.t.T(i18n.NoMatches)
	}

	first, truncated := truncate(matches[0], 50)
	if truncated {
		first += ellipsis
	}

	return r.t.T(i18n.SearchResult, len(matches), first)
}

func (r *Reporter) genericSummary(content, emptyKey string) string {
	if content == "" {
		return r.t.T(emptyKey)
	}

	return r.t.T(i18n.ResultPreview, preview(content, 60))
}

// preview keeps the first n characters with newlines collapsed, adding an
// ellipsis when content was longer.
func preview(content string, n int) string {
	short, truncated := truncate(content, n)
	short = strings.TrimSpace(strings.ReplaceAll(short, "\n", " "))

	if truncated {
		short += ellipsis
	}

	return short
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}

	return string([]rune(s)[:n]), true
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func nonBlankLines(s string) []string {
	var out []string

	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}

	return out
}

type todoSnapshot struct {
	completed int
	total     int
	lines     []string
}

var todoIcons = map[string]string{
	todos.StatusPending:    "⏳",
	todos.StatusInProgress: "🔄",
	todos.StatusCompleted:  "✅",
	todos.StatusCancelled:  "❌",
}

func todoIcon(status string) string {
	if icon, ok := todoIcons[status]; ok {
		return icon
	}

	return "○"
}

// inspectTodos reads a write_todos argument leniently: entries that are not
// objects still count towards the total but are not displayed.
func inspectTodos(args any) (todoSnapshot, error) {
	var snap todoSnapshot

	m, ok := args.(map[string]any)
	if !ok {
		return snap, fmt.Errorf("%w: arguments are %T, not an object", ErrMalformedArgs, args)
	}

	raw, ok := m["todos"]
	if !ok || raw == nil {
		return snap, nil
	}

	var entries []any

	switch list := raw.(type) {
	case []any:
		entries = list
	case []map[string]any:
		for _, e := range list {
			entries = append(entries, e)
		}
	case []todos.Item:
		for _, e := range list {
			entries = append(entries, map[string]any{"content": e.Content, "status": e.Status})
		}
	default:
		return snap, fmt.Errorf("%w: todos is %T, not a list", ErrMalformedArgs, raw)
	}

	snap.total = len(entries)

	for _, e := range entries {
		item, ok := e.(map[string]any)
		if !ok {
			continue
		}

		status, _ := item["status"].(string)
		if status == "" {
			status = todos.StatusPending
		}

		if status == todos.StatusCompleted {
			snap.completed++
		}

		if content, _ := item["content"].(string); content != "" {
			snap.lines = append(snap.lines, todoIcon(status)+" "+content)
		}
	}

	return snap, nil
}

// stringField reads a string field from object arguments.
// A missing field is returned as the empty string.
func stringField(args any, key string) (string, error) {
	m, ok := args.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: arguments are %T, not an object", ErrMalformedArgs, args)
	}

	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, not a string", ErrMalformedArgs, key, v)
	}

	return s, nil
}

// inspect checks the argument shape of the calls the reporter interprets.
func inspect(call agent.ToolCall) error {
	switch call.Name {
	case tr.WriteTodos:
		_, err := inspectTodos(call.Args)
		return err
	case tr.WriteFile:
		_, err := stringField(call.Args, "file_path")
		return err
	default:
		return nil
	}
}
