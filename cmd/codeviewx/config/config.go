// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config implements the command that prints the effective configuration
// and the tools available to the agent.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/codeviewx/cmd/codeviewx/cmdstate"
	"github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
	"github.com/urfave/cli/v3"
)

const toolArg = "tool"

// ErrUnknownTool is returned when the named tool is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// NewCommand returns the config command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration and the registered tools",
		Description: "Without an argument prints the configuration after the file, environment and flags " +
			"have been applied, followed by the registered tools. With a tool name prints that tool's parameters.",
		Flags: cmdstate.ConfigFlags(),
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: toolArg,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	factory, ok := toolregistry.FactoryFromContext(ctx)
	if !ok {
		return cli.Exit("failed to get tool factory from context", 1)
	}

	out := cmdstate.Writer(cmd)
	registry := factory()

	if name := cmd.StringArg(toolArg); name != "" {
		for tool := range registry.Iter() {
			if tool.Definition.Name != name {
				continue
			}

			params, err := yaml.Marshal(tool.Definition.Parameters)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			_, _ = fmt.Fprintf(out, "%s\n\n%s\n\nParameters:\n%s", name, tool.Definition.Description, params)

			return nil
		}

		return cli.Exit(fmt.Sprintf("%s: %s", ErrUnknownTool, name), 1)
	}

	state, err := cmdstate.Load(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	data, err := state.Config.Marshal()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	_, _ = fmt.Fprintf(out, "# working directory: %s\n%s\n", state.WorkingDir, data)
	_, _ = fmt.Fprintf(out, "Registered tools (%d):\n", registry.Len())

	for tool := range registry.Iter() {
		_, _ = fmt.Fprintf(out, "- %s: %s\n", tool.Definition.Name, tool.Definition.Description)
	}

	return nil
}
