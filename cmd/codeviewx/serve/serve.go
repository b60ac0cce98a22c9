// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package serve implements the command that browses generated documents over HTTP.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strconv"

	"github.com/matt-FFFFFF/codeviewx/cmd/codeviewx/cmdstate"
	"github.com/matt-FFFFFF/codeviewx/internal/config"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	"github.com/matt-FFFFFF/codeviewx/internal/i18n"
	"github.com/matt-FFFFFF/codeviewx/internal/server"
	"github.com/urfave/cli/v3"
)

const (
	outputDirFlag = cmdstate.OutputDirFlag
	hostFlag      = "host"
	portFlag      = "port"
	uiLangFlag    = cmdstate.UILangFlag
)

// Run serves handler on addr until ctx is done. Replaced in tests.
var Run = func(ctx context.Context, s *server.Server, addr string) error {
	return s.Run(ctx, addr)
}

// NewCommand returns the serve command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Browse the generated documentation in a web browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      outputDirFlag,
				Aliases:   []string{"o"},
				Usage:     "Documentation directory",
				Value:     config.DefaultOutputDirectory,
				TakesFile: true,
				Sources:   cli.EnvVars("CODEVIEWX_OUTPUT_DIR"),
			},
			&cli.StringFlag{
				Name:    hostFlag,
				Usage:   "Address to listen on",
				Value:   server.DefaultHost,
				Sources: cli.EnvVars("CODEVIEWX_HOST"),
			},
			&cli.IntFlag{
				Name:    portFlag,
				Usage:   "Port to listen on",
				Value:   server.DefaultPort,
				Sources: cli.EnvVars("CODEVIEWX_PORT"),
			},
			&cli.StringFlag{
				Name:    uiLangFlag,
				Usage:   fmt.Sprintf("Interface language, one of %v. Detected from the locale when unset", i18n.UILanguages),
				Sources: cli.EnvVars("CODEVIEWX_UI_LANG"),
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	out := cmdstate.Writer(cmd)
	errOut := cmdstate.ErrWriter(cmd)
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	cfg := config.Default()
	cfg.UILanguage = cmd.String(uiLangFlag)

	t, err := i18n.New(cfg.ResolveUILanguage().Value)
	if err != nil {
		_, _ = fmt.Fprintln(errOut, i18n.Default().T(i18n.ErrorLine, err.Error()))
		return cli.Exit("", 1)
	}

	dir, err := filepath.Abs(cmd.String(outputDirFlag))
	if err != nil {
		_, _ = fmt.Fprintln(errOut, t.T(i18n.ErrorLine, err.Error()))
		return cli.Exit("", 1)
	}

	srv, err := server.New(dir, server.WithTranslator(t))
	if err != nil {
		if errors.Is(err, server.ErrDocsDirMissing) {
			_, _ = fmt.Fprintln(errOut, t.T(i18n.DocsDirMissing, dir))
			_, _ = fmt.Fprintln(errOut, t.T(i18n.DocsDirHint))

			return cli.Exit("", 1)
		}

		_, _ = fmt.Fprintln(errOut, t.T(i18n.ErrorLine, err.Error()))

		return cli.Exit("", 1)
	}

	addr := net.JoinHostPort(cmd.String(hostFlag), strconv.Itoa(cmd.Int(portFlag)))

	_, _ = fmt.Fprintln(out, t.T(i18n.ServerStarting, "http://"+addr))
	_, _ = fmt.Fprintln(out, t.T(i18n.ServerDirectory, dir))
	_, _ = fmt.Fprintln(out, t.T(i18n.ServerStop))

	if err := Run(ctx, srv, addr); err != nil {
		logger.Error("server failed", "error", err)
		_, _ = fmt.Fprintln(errOut, t.T(i18n.ErrorLine, err.Error()))

		return cli.Exit("", 1)
	}

	return nil
}
