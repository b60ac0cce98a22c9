// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the codeviewx command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/codeviewx/internal/config"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	"github.com/matt-FFFFFF/codeviewx/internal/signalbroker"
	"github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	loaded, err := config.LoadDotEnv(config.DotEnvFileName)
	if err != nil {
		ctxlog.Warn(ctx, "ignoring .env file", "error", err)
	} else if len(loaded) > 0 {
		ctxlog.Debug(ctx, "loaded .env file", "variables", loaded)
	}

	ctx = toolregistry.WithFactory(ctx, newToolFactory())

	// Exit codes from cli.Exit are handled by the cli framework.
	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Debug(ctx, "command completed successfully")
}
