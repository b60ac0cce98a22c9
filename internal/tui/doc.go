// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides a Terminal User Interface (TUI) for monitoring documentation
// generation. It shows a spinner, the step and document counters, and a scrolling
// window of the progress reporter's latest lines.
//
// The TUI is fed by a progress.ChannelSink. Pressing q or ctrl+c before the run
// completes cancels the run.
package tui
