// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"iter"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
)

// Consume pulls events from the stream and hands each to o, stopping at the
// first stream error or when ctx is done. The caller is responsible for
// printing the end-of-run summary.
func Consume(ctx context.Context, events iter.Seq2[agent.StepEvent, error], o Observer) error {
	for ev, err := range events {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		o.Observe(ev)
	}

	return ctx.Err()
}
