// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds the flags shared by the generate and config commands
// and turns them, together with the configuration file, into the effective config.
package cmdstate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/codeviewx/internal/config"
	"github.com/matt-FFFFFF/codeviewx/internal/i18n"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	WorkingDirFlag     = "working-dir"
	ConfigFlag         = "config"
	OutputDirFlag      = "output-dir"
	LanguageFlag       = "language"
	UILangFlag         = "ui-lang"
	RecursionLimitFlag = "recursion-limit"
	ProviderFlag       = "provider"
	ModelFlag          = "model"
	BaseURLFlag        = "base-url"
)

// ErrWorkingDir is returned when the working directory cannot be resolved.
var ErrWorkingDir = errors.New("invalid working directory")

// ConfigFlags returns fresh copies of the flags that feed the effective config.
// The flags are local so that a root command carrying them does not leak them
// into its subcommands.
func ConfigFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      WorkingDirFlag,
			Aliases:   []string{"w"},
			Usage:     "Project directory to analyze",
			Value:     ".",
			TakesFile: true,
			Local:     true,
			Sources:   cli.EnvVars("CODEVIEWX_WORKING_DIR"),
		},
		&cli.StringFlag{
			Name:      ConfigFlag,
			Usage:     "Configuration file, defaults to " + config.DefaultFileName + " in the working directory",
			TakesFile: true,
			Local:     true,
			Sources:   cli.EnvVars("CODEVIEWX_CONFIG"),
		},
		&cli.StringFlag{
			Name:      OutputDirFlag,
			Aliases:   []string{"o"},
			Usage:     "Directory the documents are written to, relative to the working directory",
			Value:     config.DefaultOutputDirectory,
			TakesFile: true,
			Local:     true,
			Sources:   cli.EnvVars("CODEVIEWX_OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:    LanguageFlag,
			Aliases: []string{"l"},
			Usage:   fmt.Sprintf("Document language, one of %v. Detected from the locale when unset", i18n.DocLanguages),
			Local:   true,
			Sources: cli.EnvVars("CODEVIEWX_LANGUAGE"),
		},
		&cli.StringFlag{
			Name:    UILangFlag,
			Usage:   fmt.Sprintf("Interface language, one of %v. Detected from the locale when unset", i18n.UILanguages),
			Local:   true,
			Sources: cli.EnvVars("CODEVIEWX_UI_LANG"),
		},
		&cli.IntFlag{
			Name:    RecursionLimitFlag,
			Usage:   "Maximum number of agent steps",
			Value:   config.DefaultRecursionLimit,
			Local:   true,
			Sources: cli.EnvVars("CODEVIEWX_RECURSION_LIMIT"),
		},
		&cli.StringFlag{
			Name:    ProviderFlag,
			Usage:   "Model provider (openai or gemini). Detected from the API keys when unset",
			Local:   true,
			Sources: cli.EnvVars("CODEVIEWX_PROVIDER"),
		},
		&cli.StringFlag{
			Name:    ModelFlag,
			Usage:   "Model name",
			Local:   true,
			Sources: cli.EnvVars("CODEVIEWX_MODEL"),
		},
		&cli.StringFlag{
			Name:    BaseURLFlag,
			Usage:   "Base URL of an OpenAI compatible API",
			Local:   true,
			Sources: cli.EnvVars("CODEVIEWX_BASE_URL"),
		},
	}
}

// State is the effective configuration of a command invocation.
type State struct {
	// Config is the validated effective configuration.
	Config config.Config
	// File is the configuration as read from the file, before flags were applied.
	File config.Config
	// WorkingDir is the absolute project directory.
	WorkingDir string

	docLanguageSet bool
	uiLanguageSet  bool
}

// Load resolves the working directory, reads the configuration file and applies
// every flag the user set.
func Load(cmd *cli.Command) (State, error) {
	abs, err := filepath.Abs(cmd.String(WorkingDirFlag))
	if err != nil {
		return State{}, errors.Join(ErrWorkingDir, err)
	}

	path := cmd.String(ConfigFlag)
	required := path != ""

	if !required {
		path = filepath.Join(abs, config.DefaultFileName)
	}

	file, err := config.Load(path, required)
	if err != nil {
		return State{}, err
	}

	cfg := file
	cfg.Apply(overrides(cmd))

	if err := cfg.Validate(); err != nil {
		return State{}, err
	}

	return State{
		Config:         cfg,
		File:           file,
		WorkingDir:     abs,
		docLanguageSet: cmd.IsSet(LanguageFlag),
		uiLanguageSet:  cmd.IsSet(UILangFlag),
	}, nil
}

func overrides(cmd *cli.Command) config.Overrides {
	var o config.Overrides

	o.Provider = stringIfSet(cmd, ProviderFlag)
	o.Model = stringIfSet(cmd, ModelFlag)
	o.BaseURL = stringIfSet(cmd, BaseURLFlag)
	o.OutputDirectory = stringIfSet(cmd, OutputDirFlag)
	o.DocLanguage = stringIfSet(cmd, LanguageFlag)
	o.UILanguage = stringIfSet(cmd, UILangFlag)

	if cmd.IsSet(RecursionLimitFlag) {
		v := cmd.Int(RecursionLimitFlag)
		o.RecursionLimit = &v
	}

	return o
}

func stringIfSet(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}

	v := cmd.String(name)

	return &v
}

// DocLanguageSource returns the translated origin of the document language.
func (s State) DocLanguageSource(t i18n.Translator) string {
	return languageSource(t, s.docLanguageSet, s.File.DocLanguage)
}

// UILanguageSource returns the translated origin of the UI language.
func (s State) UILanguageSource(t i18n.Translator) string {
	return languageSource(t, s.uiLanguageSet, s.File.UILanguage)
}

func languageSource(t i18n.Translator, flagSet bool, fileValue string) string {
	switch {
	case flagSet:
		return t.T(i18n.UserSpecified)
	case fileValue != "":
		return t.T(i18n.ConfigFile)
	default:
		return t.T(i18n.AutoDetected)
	}
}

// OutputDirectory returns the output directory resolved against the working directory.
func (s State) OutputDirectory() string {
	if filepath.IsAbs(s.Config.OutputDirectory) {
		return s.Config.OutputDirectory
	}

	return filepath.Join(s.WorkingDir, s.Config.OutputDirectory)
}

// Translator returns the printer for the resolved UI language.
func (s State) Translator() i18n.Translator {
	p, err := i18n.New(s.Config.ResolveUILanguage().Value)
	if err != nil {
		return i18n.Default()
	}

	return p
}

// Writer returns the root command's writer, or stdout.
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

// ErrWriter returns the root command's error writer, or stderr.
func ErrWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}
