// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger used across codeviewx.
// It uses the slog package for structured logging and supports different log levels.
//
// The default is a pretty console handler writing to stderr, so diagnostic output never
// interleaves with the progress text written to stdout.
// The level is read from CODEVIEWX_LOG_LEVEL and may be lowered to DEBUG with --verbose.
package ctxlog
