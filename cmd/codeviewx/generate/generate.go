// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package generate implements the documentation generation command.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/matt-FFFFFF/codeviewx/cmd/codeviewx/cmdstate"
	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	"github.com/matt-FFFFFF/codeviewx/internal/i18n"
	"github.com/matt-FFFFFF/codeviewx/internal/llm"
	"github.com/matt-FFFFFF/codeviewx/internal/progress"
	"github.com/matt-FFFFFF/codeviewx/internal/prompt"
	"github.com/matt-FFFFFF/codeviewx/internal/signalbroker"
	"github.com/matt-FFFFFF/codeviewx/internal/source"
	"github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
	"github.com/matt-FFFFFF/codeviewx/internal/tools/filesystem"
	"github.com/matt-FFFFFF/codeviewx/internal/tui"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	sourceFlag  = "source"
	verboseFlag = "verbose"
	tuiFlag     = "tui"
	yesFlag     = "yes"

	ruleWidth  = 60
	timeFormat = "2006-01-02 15:04:05"
)

var (
	// ErrNotADirectory is returned when the working directory is not a directory.
	ErrNotADirectory = errors.New("working directory is not a directory")
	// ErrNoToolFactory is returned when the context carries no tool factory.
	ErrNoToolFactory = errors.New("failed to get tool factory from context")
)

// NewModel builds the model client. Replaced in tests.
var NewModel = func(ctx context.Context, s llm.Settings) (llm.Client, error) {
	return llm.New(ctx, s)
}

// Chdir changes the process working directory so the agent's relative paths
// resolve against the project. Replaced in tests.
var Chdir = os.Chdir

// FetchSource retrieves --source into a temporary directory. Replaced in tests.
var FetchSource = source.Fetch

// IsTerminal reports whether stdin is interactive. Replaced in tests.
var IsTerminal = stdinIsTerminal

// Confirm asks a yes/no question. Replaced in tests.
var Confirm = confirm

// NewRunner builds the TUI runner used with --tui. Replaced in tests.
var NewRunner = func() *tui.Runner {
	return tui.NewRunner()
}

// Flags returns the flags of the generate command.
func Flags() []cli.Flag {
	return append(cmdstate.ConfigFlags(),
		&cli.StringFlag{
			Name:    sourceFlag,
			Usage:   "Fetch the project from a go-getter URL (git::, https://...tar.gz, s3::) instead of using the working directory",
			Local:   true,
			Sources: cli.EnvVars("CODEVIEWX_SOURCE"),
		},
		&cli.BoolFlag{
			Name:    verboseFlag,
			Usage:   "Show every agent step and debug logs",
			Local:   true,
			Sources: cli.EnvVars("CODEVIEWX_VERBOSE"),
		},
		&cli.BoolFlag{
			Name:  tuiFlag,
			Usage: "Show progress in an interactive terminal UI",
			Local: true,
		},
		&cli.BoolFlag{
			Name:    yesFlag,
			Aliases: []string{"y"},
			Usage:   "Do not ask before writing into a non-empty output directory",
			Local:   true,
		},
	)
}

// NewCommand returns the generate command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "generate",
		Usage:       "Analyze a project and write its technical documentation",
		Description: "Generate documentation for the working directory. This is also the default action.",
		Flags:       Flags(),
		Action:      Action,
	}
}

// Action runs a documentation generation.
func Action(ctx context.Context, cmd *cli.Command) error {
	out := cmdstate.Writer(cmd)
	errOut := cmdstate.ErrWriter(cmd)
	verbose := cmd.Bool(verboseFlag)

	if verbose {
		ctxlog.SetVerbose(true)
	}

	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running generate command")

	state, err := cmdstate.Load(cmd)
	if err != nil {
		return fail(errOut, i18n.Default(), err)
	}

	t := state.Translator()

	if src := cmd.String(sourceFlag); src != "" {
		_, _ = fmt.Fprintln(out, t.T(i18n.FetchingSource, src))

		// The fetched tree is removed after the run, so the documents go to
		// the output directory of the invoking working directory.
		state.Config.OutputDirectory = state.OutputDirectory()

		dir, cleanup, err := FetchSource(ctx, src)
		if err != nil {
			return fail(errOut, t, err)
		}

		defer cleanup()

		state.WorkingDir = dir
	}

	fsys := filesystem.FsFactory()

	if info, err := fsys.Stat(state.WorkingDir); err != nil {
		return fail(errOut, t, err)
	} else if !info.IsDir() {
		return fail(errOut, t, fmt.Errorf("%w: %s", ErrNotADirectory, state.WorkingDir))
	}

	if !cmd.Bool(yesFlag) && IsTerminal() && !isEmptyDir(fsys, state.OutputDirectory()) {
		ok, err := Confirm(t.T(i18n.ConfirmOverwrite, state.Config.OutputDirectory))
		if err != nil {
			return fail(errOut, t, err)
		}

		if !ok {
			_, _ = fmt.Fprintln(out, t.T(i18n.Aborted))
			return nil
		}
	}

	docLang := state.Config.ResolveDocLanguage()
	uiLang := state.Config.ResolveUILanguage()
	rule := strings.Repeat("=", ruleWidth)

	printLines(out,
		rule,
		t.T(i18n.Starting, time.Now().Format(timeFormat)),
		rule,
		t.T(i18n.WorkingDir, state.WorkingDir),
		t.T(i18n.OutputDir, state.Config.OutputDirectory),
		t.T(i18n.DocLanguage, docLang.Value, state.DocLanguageSource(t)),
		t.T(i18n.UILanguage, uiLang.Value, state.UILanguageSource(t)),
	)

	system, err := prompt.Load(prompt.DocumentEngineer,
		prompt.DocumentVars(state.WorkingDir, state.Config.OutputDirectory, docLang.Value))
	if err != nil {
		return fail(errOut, t, err)
	}

	_, _ = fmt.Fprintln(out, t.T(i18n.LoadedPrompt))

	factory, ok := toolregistry.FactoryFromContext(ctx)
	if !ok {
		return fail(errOut, t, ErrNoToolFactory)
	}

	model, err := NewModel(ctx, state.Config.LLMSettings())
	if err != nil {
		return fail(errOut, t, err)
	}

	defer model.Close() //nolint:errcheck

	registry := factory()

	ag, err := agent.New(model, registry,
		agent.WithSystemPrompt(system),
		agent.WithRecursionLimit(state.Config.RecursionLimit),
	)
	if err != nil {
		return fail(errOut, t, err)
	}

	printLines(out,
		t.T(i18n.CreatedAgent),
		t.T(i18n.RegisteredTools, registry.Len(), strings.Join(registry.Names(), ", ")),
		rule,
		"",
		t.T(i18n.Analyzing),
		"",
	)

	if err := Chdir(state.WorkingDir); err != nil {
		return fail(errOut, t, err)
	}

	opts := []progress.Option{
		progress.WithTranslator(t),
		progress.WithOutputDirectory(state.Config.OutputDirectory),
		progress.WithVerbose(verbose),
	}
	task := t.T(i18n.AgentTask)

	var runErr error

	if cmd.Bool(tuiFlag) {
		runErr = runTUI(ctx, out, errOut, ag, task, opts)
	} else {
		rep := progress.New(append(opts, progress.WithWriter(out))...)

		runErr = progress.Consume(ctx, ag.Stream(ctx, task), rep)
		if runErr == nil || errors.Is(runErr, context.Canceled) {
			rep.Finish()
		}
	}

	switch {
	case runErr == nil:
		logger.Info("documentation generation complete")
		return nil
	case errors.Is(runErr, context.Canceled):
		_, _ = fmt.Fprintln(out, "\n"+t.T(i18n.Interrupted))
		return cli.Exit("", signalbroker.InterruptExitCode)
	default:
		return fail(errOut, t, runErr)
	}
}

// runTUI streams the run under the terminal UI and prints the summary once the
// UI has released the terminal. Logs are buffered while the UI is shown.
func runTUI(ctx context.Context, out, errOut io.Writer, ag *agent.Agent, task string, opts []progress.Option) error {
	buf := new(bytes.Buffer)
	tuiCtx := ctxlog.NewForTUI(ctx, buf)

	var rep *progress.Reporter

	err := NewRunner().Run(tuiCtx, func(ctx context.Context, sink progress.Sink) error {
		rep = progress.New(append(opts, progress.WithWriter(io.Discard), progress.WithSink(sink))...)

		err := progress.Consume(ctx, ag.Stream(ctx, task), rep)
		if err == nil || errors.Is(err, context.Canceled) {
			rep.Finish()
		}

		return err
	})

	buf.WriteTo(errOut) //nolint:errcheck

	if rep != nil && (err == nil || errors.Is(err, context.Canceled)) {
		rep.WriteSummary(out)
	}

	return err
}

func fail(w io.Writer, t i18n.Translator, err error) error {
	_, _ = fmt.Fprintln(w, t.T(i18n.ErrorLine, err.Error()))
	return cli.Exit("", 1)
}

func printLines(w io.Writer, lines ...string) {
	for _, l := range lines {
		_, _ = fmt.Fprintln(w, l)
	}
}

func isEmptyDir(fsys afero.Fs, dir string) bool {
	entries, err := afero.ReadDir(fsys, dir)
	return err != nil || len(entries) == 0
}
