// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/codeviewx/internal/progress"
)

// DefaultBufferSize is the progress channel capacity.
const DefaultBufferSize = 1024

// Work runs a generation and reports progress to sink.
type Work func(ctx context.Context, sink progress.Sink) error

// Runner manages the TUI application and progress event integration.
type Runner struct {
	opts       []tea.ProgramOption
	bufferSize int
}

// NewRunner creates a new TUI runner. Without options the program uses the alternate screen.
func NewRunner(opts ...tea.ProgramOption) *Runner {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}

	return &Runner{
		opts:       opts,
		bufferSize: DefaultBufferSize,
	}
}

type sendListener struct {
	program *tea.Program
}

// OnEvent implements progress.Listener.
func (l sendListener) OnEvent(ev progress.Event) {
	l.program.Send(ProgressEventMsg{Event: ev})
}

// Run shows the TUI while work executes and returns work's error joined with any TUI error.
// After the run completes the TUI stays open until the user quits.
// Quitting early or cancelling ctx cancels the context passed to work.
func (r *Runner) Run(ctx context.Context, work Work) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(cancel)
	program := tea.NewProgram(model, r.opts...)

	sink := progress.NewChannelSink(ctx, r.bufferSize)
	sink.Listen(sendListener{program: program})

	workDone := make(chan error, 1)

	go func() {
		err := work(ctx, sink)
		sink.Close()
		program.Send(RunCompletedMsg{Err: err})
		workDone <- err
	}()

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	_, tuiErr := program.Run()

	cancel()

	workErr := <-workDone
	if errors.Is(tuiErr, tea.ErrProgramKilled) {
		tuiErr = nil
	}

	return errors.Join(workErr, tuiErr)
}
