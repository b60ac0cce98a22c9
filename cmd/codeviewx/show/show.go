// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show renders a generated document in the terminal.
package show

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/matt-FFFFFF/codeviewx/cmd/codeviewx/cmdstate"
	"github.com/matt-FFFFFF/codeviewx/internal/config"
	"github.com/matt-FFFFFF/codeviewx/internal/server"
	"github.com/matt-FFFFFF/codeviewx/internal/tools/filesystem"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	fileArg      = "file"
	defaultWidth = 80
	margin       = 4
	noTTYStyle   = "notty"
)

var (
	// ErrReadFile is returned when the document cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrRender is returned when the document cannot be rendered.
	ErrRender = errors.New("failed to render markdown")
)

// NewCommand returns the show command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Render a generated document in the terminal",
		Description: "Show a Markdown document. Without an argument the README of the output directory is shown.",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: fileArg,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	path := cmd.StringArg(fileArg)
	if path == "" {
		path = filepath.Join(config.DefaultOutputDirectory, server.IndexFile)
	}

	data, err := afero.ReadFile(filesystem.FsFactory(), path)
	if err != nil {
		return cli.Exit(errors.Join(ErrReadFile, err).Error(), 1)
	}

	out := cmdstate.Writer(cmd)

	rendered, err := Render(string(data), out)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	_, err = io.WriteString(out, rendered)

	return err
}

// Render formats markdown for w. Terminals get an automatic style wrapped to
// their width; other writers get the plain style.
func Render(markdown string, w io.Writer) (string, error) {
	style := glamour.WithStandardStyle(noTTYStyle)
	width := defaultWidth

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		style = glamour.WithAutoStyle()

		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > margin {
			width = tw
		}
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width-margin))
	if err != nil {
		return "", errors.Join(ErrRender, err)
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return "", errors.Join(ErrRender, err)
	}

	return rendered, nil
}
