// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/matt-FFFFFF/codeviewx"
	"github.com/matt-FFFFFF/codeviewx/cmd/codeviewx/config"
	"github.com/matt-FFFFFF/codeviewx/cmd/codeviewx/generate"
	"github.com/matt-FFFFFF/codeviewx/cmd/codeviewx/serve"
	"github.com/matt-FFFFFF/codeviewx/cmd/codeviewx/show"
	"github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
	"github.com/matt-FFFFFF/codeviewx/internal/tools/filesystem"
	"github.com/matt-FFFFFF/codeviewx/internal/tools/search"
	"github.com/matt-FFFFFF/codeviewx/internal/tools/shell"
	"github.com/matt-FFFFFF/codeviewx/internal/tools/todos"
	"github.com/urfave/cli/v3"
)

// newRootCmd returns the root command. Without a subcommand it generates documentation.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			generate.NewCommand(),
			serve.NewCommand(),
			show.NewCommand(),
			config.NewCommand(),
		},
		Flags:     generate.Flags(),
		Action:    generate.Action,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "codeviewx",
		Version:   fmt.Sprintf("%s (commit: %s)", codeviewx.Version, codeviewx.Commit),
		Description: `CodeViewX analyzes a code base with an AI agent and writes technical
documentation for it: an overview, architecture, core mechanisms, data models,
APIs and development guides. The agent reads files, searches code and runs
shell commands, and the generated Markdown can be browsed with "codeviewx serve".`,
		Usage:     "codeviewx -w ./myproject -o docs",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

// newToolFactory returns the factory building each run's tool registry.
func newToolFactory() toolregistry.Factory {
	return toolregistry.NewFactory(
		filesystem.Register,
		shell.Register,
		search.Register,
		todos.Register,
	)
}
