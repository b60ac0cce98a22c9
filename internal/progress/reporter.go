// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/i18n"
	tr "github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
)

const (
	// DefaultToolResultLimit is the number of steps during which tool results are summarised.
	DefaultToolResultLimit = 25
	// DefaultTodoJump is how many newly completed items re-print the task list.
	DefaultTodoJump = 2
	// DefaultOutputDirectory matches the generate command's default.
	DefaultOutputDirectory = "docs"

	ruleWidth = 80
	indent    = "   "
)

// Observer consumes step events.
type Observer interface {
	Observe(ev agent.StepEvent)
}

var _ Observer = (*Reporter)(nil)

// Reporter prints progress for one generation run. It is not safe for concurrent use;
// events are observed from a single consumption loop.
type Reporter struct {
	w               io.Writer
	t               i18n.Translator
	sink            Sink
	outputDir       string
	verbose         bool
	toolResultLimit int
	todoJump        int

	styles    reporterStyles
	state     State
	lastFiles map[string]string
	finished  bool
}

type reporterStyles struct {
	banner, heading, faint lipgloss.Style
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithWriter sets the destination of progress text. Defaults to stdout.
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.w = w
		}
	}
}

// WithOutputDirectory sets the directory that marks a write as a generated document.
func WithOutputDirectory(dir string) Option {
	return func(r *Reporter) {
		r.outputDir = dir
	}
}

// WithVerbose dumps every message instead of summarising.
func WithVerbose(verbose bool) Option {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// WithTranslator sets the translator for printed strings.
func WithTranslator(t i18n.Translator) Option {
	return func(r *Reporter) {
		if t != nil {
			r.t = t
		}
	}
}

// WithToolResultLimit sets how many steps tool results are summarised for.
func WithToolResultLimit(n int) Option {
	return func(r *Reporter) {
		r.toolResultLimit = n
	}
}

// WithTodoJump sets how many newly completed todos re-print the task list.
// Values below 1 are ignored.
func WithTodoJump(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.todoJump = n
		}
	}
}

// WithSink forwards printed lines and step updates to s.
func WithSink(s Sink) Option {
	return func(r *Reporter) {
		if s != nil {
			r.sink = s
		}
	}
}

// New creates a Reporter.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		w:               os.Stdout,
		sink:            NewNullSink(),
		outputDir:       DefaultOutputDirectory,
		toolResultLimit: DefaultToolResultLimit,
		todoJump:        DefaultTodoJump,
		state:           NewState(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.t == nil {
		r.t = i18n.Default()
	}

	renderer := lipgloss.NewRenderer(r.w)
	r.styles = reporterStyles{
		banner:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		heading: renderer.NewStyle().Bold(true),
		faint:   renderer.NewStyle().Faint(true),
	}

	return r
}

// State returns a copy of the reporter state.
func (r *Reporter) State() State {
	return r.state
}

// Observe processes one step event. The summary lists the files of the last
// event observed; the agent snapshots them cumulatively.
func (r *Reporter) Observe(ev agent.StepEvent) {
	r.state.Steps++

	r.lastFiles = ev.Files

	if r.verbose {
		r.observeVerbose(ev.Message)
	} else {
		r.observe(ev.Message)
	}

	r.sink.Report(Event{Type: EventStep, State: r.state, Timestamp: time.Now()})
}

func (r *Reporter) observe(msg agent.Message) {
	switch msg.Role {
	case agent.RoleAssistant:
		if !msg.HasToolCalls() {
			if content := strings.TrimSpace(msg.Content); runeLen(content) > 20 {
				r.println("")
				r.println(r.t.T(i18n.AISummary, preview(content, 200)))
			}
		}
	case agent.RoleTool:
		if r.state.Steps <= r.toolResultLimit {
			if line, ok := r.summarizeResult(msg.Name, msg.Content); ok {
				r.println(indent + line)
			}
		}
	}

	if msg.HasToolCalls() {
		r.classify(msg.ToolCalls)
	}
}

// classify prints at most one annotation for the tool calls of a message,
// in priority order: task list, document write, analysis hint. Of several
// document writes in one message the last one is named.
func (r *Reporter) classify(calls []agent.ToolCall) {
	var (
		todoLines []string
		docPath   string
	)

	for _, call := range calls {
		switch call.Name {
		case tr.WriteTodos:
			lines, err := r.updateTodos(call.Args)
			if err == nil && len(lines) > 0 {
				todoLines = lines
			}
		case tr.WriteFile:
			path, err := stringField(call.Args, "file_path")
			if err == nil && path != "" && strings.Contains(path, r.outputDir) {
				docPath = path
			}
		}
	}

	switch {
	case len(todoLines) > 0:
		r.println("")
		r.println(r.styles.heading.Render(r.t.T(i18n.TaskPlanning)))

		for _, l := range todoLines {
			r.println(indent + l)
		}

		r.println("")
	case docPath != "":
		r.state.DocsGenerated++
		r.state.AnalysisPhase = false
		r.println(r.t.T(i18n.GeneratingDoc, r.state.DocsGenerated, basename(docPath)))
	case r.state.AnalysisPhase && slices.ContainsFunc(calls, isAnalysisCall):
		r.state.AnalysisPhase = false
		r.println(r.t.T(i18n.AnalyzingStruct))
	}
}

func isAnalysisCall(call agent.ToolCall) bool {
	return call.Name == tr.ListDirectory || call.Name == tr.RipgrepSearch
}

// updateTodos applies a write_todos snapshot to the state and returns the lines
// to print, or nil when the list should not be shown this time.
func (r *Reporter) updateTodos(args any) ([]string, error) {
	snap, err := inspectTodos(args)
	if err != nil || snap.total == 0 {
		return nil, err
	}

	s := &r.state
	show := false

	switch {
	case !s.TodosShown:
		show = true
	case snap.completed >= s.LastTodosCompleted+r.todoJump:
		show = true
	case snap.completed == snap.total && snap.completed > s.LastTodosCompleted:
		show = true
	}

	if show {
		s.TodosShown = true
	}

	if snap.completed > s.LastTodosCompleted {
		s.LastTodosCompleted = snap.completed
	}

	if !show {
		return nil, nil
	}

	return snap.lines, nil
}

func (r *Reporter) observeVerbose(msg agent.Message) {
	rule := strings.Repeat("=", ruleWidth)

	r.println("")
	r.println(rule)
	r.println(r.styles.heading.Render(r.t.T(i18n.VerboseStep, r.state.Steps, msg.Role.Kind())))
	r.println(rule)
	r.print(msg.String())

	if !msg.HasToolCalls() {
		return
	}

	r.println("")
	r.println(r.t.T(i18n.VerboseToolCalls, len(msg.ToolCalls)))

	for _, call := range msg.ToolCalls {
		r.println(indent + "- " + call.Name)
	}

	for _, call := range msg.ToolCalls {
		if err := inspect(call); err != nil {
			r.println(r.styles.faint.Render(r.t.T(i18n.VerboseInspectErr, err.Error())))
		}
	}
}

// Finish prints the completion banner and summary once and reports EventFinished.
func (r *Reporter) Finish() {
	if r.finished {
		return
	}

	r.finished = true

	for _, line := range r.summaryLines() {
		r.println(line)
	}

	r.sink.Report(Event{Type: EventFinished, State: r.state, Timestamp: time.Now()})
}

// WriteSummary writes the lines Finish prints to w without reporting events.
func (r *Reporter) WriteSummary(w io.Writer) {
	for _, line := range r.summaryLines() {
		_, _ = io.WriteString(w, line+"\n")
	}
}

func (r *Reporter) summaryLines() []string {
	rule := strings.Repeat("=", ruleWidth)
	lines := []string{"", rule, r.styles.banner.Render(r.t.T(i18n.Completed)), rule}

	if r.state.DocsGenerated > 0 {
		lines = append(lines,
			"",
			r.styles.heading.Render(r.t.T(i18n.Summary)),
			indent+r.t.T(i18n.GeneratedFiles, r.state.DocsGenerated),
			indent+r.t.T(i18n.DocLocation, r.outputDir),
			indent+r.t.T(i18n.ExecutionSteps, r.state.Steps),
		)
	}

	if len(r.lastFiles) > 0 {
		lines = append(lines, "", r.styles.heading.Render(r.t.T(i18n.GeneratedFileList)))

		for _, name := range slices.Sorted(maps.Keys(r.lastFiles)) {
			lines = append(lines, indent+"- "+name)
		}
	}

	return lines
}

func (r *Reporter) println(s string) {
	r.print(s + "\n")
}

func (r *Reporter) print(s string) {
	_, _ = io.WriteString(r.w, s)

	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		r.sink.Report(Event{Type: EventLine, Line: line, Timestamp: time.Now()})
	}
}

func basename(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}

	return path
}
