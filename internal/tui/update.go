// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/codeviewx/internal/progress"
)

const elapsedRounding = time.Second

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

// RunCompletedMsg indicates that the generation run has returned.
type RunCompletedMsg struct {
	Err error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()

		return m, nil

	case spinner.TickMsg:
		if m.completed {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case ProgressEventMsg:
		m.processProgressEvent(msg.Event)
		return m, nil

	case RunCompletedMsg:
		m.completed = true
		m.err = msg.Err

		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if !m.completed {
			m.interrupted = true

			if m.interrupt != nil {
				m.interrupt()
			}
		}

		return m, tea.Quit
	}

	// All other keys (scrolling) are handled by the viewport
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	var view strings.Builder

	view.WriteString(m.renderTitle())
	view.WriteString("\n")
	view.WriteString(m.styles.Border.Render(m.viewport.View()))
	view.WriteString("\n")
	view.WriteString(m.renderStatusBar())
	view.WriteString("\n")

	help := "↑/↓ or j/k to scroll, q to interrupt"
	if m.completed {
		help = "↑/↓ or j/k to scroll, q to quit and return to terminal"
	}

	view.WriteString(m.styles.Help.Render(help))

	return view.String()
}

func (m *Model) renderTitle() string {
	var icon string

	switch {
	case m.completed && m.err != nil:
		icon = m.styles.Failed.Render("❌")
	case m.completed:
		icon = m.styles.Success.Render("✅")
	default:
		icon = m.spinner.View()
	}

	counters := m.styles.Counter.Render(fmt.Sprintf("step %d · docs %d", m.state.Steps, m.state.DocsGenerated))

	return fmt.Sprintf("%s %s  %s", icon, m.styles.Title.Render("CodeViewX"), counters)
}

func (m *Model) renderStatusBar() string {
	var phase string

	switch {
	case m.completed && m.err != nil:
		phase = m.styles.Failed.Render("Failed: " + m.err.Error())
	case m.completed:
		phase = m.styles.Success.Render("Documentation generation complete")
	case m.interrupted:
		phase = "Interrupting..."
	case m.state.AnalysisPhase:
		phase = "Analyzing project"
	default:
		phase = "Writing documents"
	}

	elapsed := time.Since(m.started).Round(elapsedRounding)

	return m.styles.Status.Render(fmt.Sprintf("%s  (%s)", phase, elapsed))
}
