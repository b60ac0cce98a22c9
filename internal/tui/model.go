// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/codeviewx/internal/progress"
)

const (
	// DefaultMaxLines is the number of reporter lines kept for scrolling.
	DefaultMaxLines = 500

	defaultWidth  = 80
	defaultHeight = 24
	// title, status bar, help and the viewport border.
	reservedLines = 7
	borderWidth   = 2
)

// Model represents the TUI application state.
type Model struct {
	interrupt func()
	spinner   spinner.Model
	viewport  viewport.Model
	styles    *Styles

	lines    []string
	maxLines int
	state    progress.State
	started  time.Time

	width       int
	height      int
	completed   bool
	interrupted bool
	err         error
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Spinner lipgloss.Style
	Counter lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Border  lipgloss.Style
	Status  lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Counter: lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// NewModel creates a new TUI model. interrupt is called when the user quits before
// the run completes.
func NewModel(interrupt func()) *Model {
	styles := NewStyles()

	return &Model{
		interrupt: interrupt,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		viewport:  viewport.New(defaultWidth-borderWidth, defaultHeight-reservedLines),
		styles:    styles,
		maxLines:  DefaultMaxLines,
		state:     progress.NewState(),
		started:   time.Now(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

// State returns the latest reporter state received.
func (m *Model) State() progress.State {
	return m.state
}

// Lines returns the retained reporter lines.
func (m *Model) Lines() []string {
	return m.lines
}

// Interrupted reports whether the user quit before the run completed.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// Completed reports whether the run has finished.
func (m *Model) Completed() bool {
	return m.completed
}

func (m *Model) updateViewportSize() {
	m.viewport.Width = max(m.width-borderWidth, 1)
	m.viewport.Height = max(m.height-reservedLines, 1)
}

func (m *Model) appendLine(line string) {
	atBottom := m.viewport.AtBottom()

	m.lines = append(m.lines, line)
	if over := len(m.lines) - m.maxLines; over > 0 {
		m.lines = m.lines[over:]
	}

	m.viewport.SetContent(strings.Join(m.lines, "\n"))

	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) processProgressEvent(ev progress.Event) {
	switch ev.Type {
	case progress.EventLine:
		m.appendLine(ev.Line)
	case progress.EventStep, progress.EventFinished:
		m.state = ev.State
	}
}
