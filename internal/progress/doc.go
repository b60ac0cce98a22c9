// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress turns the agent's step events into concise console output.
//
// A Reporter observes one StepEvent at a time and prints short summaries of
// tool results, the agent's task list, documents being written and, once the
// run ends, a completion banner. Reporters also forward what they print to an
// optional Sink so that other views, such as the TUI, can follow the run.
package progress
