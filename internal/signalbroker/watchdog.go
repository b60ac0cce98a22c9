// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
)

// ExitFunc terminates the process. Replaced in tests.
var ExitFunc = os.Exit

// Watch monitors the signal channel until it is closed or ctx is done.
// The first signal cancels the run context so the caller can wind down and
// print its summary; a second signal of the same type exits immediately.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	sigMap := make(map[os.Signal]struct{})
	done := ctx.Done()

	for {
		select {
		case <-done:
			if len(sigMap) == 0 {
				return
			}

			// Cancelled by us: keep listening for the second signal.
			done = nil
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, seen := sigMap[sig]; seen {
				ctxlog.Logger(ctx).Warn("watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
				ExitFunc(InterruptExitCode)

				return
			}

			ctxlog.Logger(ctx).Info("watchdog", "detail", "received first signal of type, cancelling run", "signal", sig.String())

			sigMap[sig] = struct{}{}

			cancel()
		}
	}
}
