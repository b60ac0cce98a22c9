// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package agent contains a minimal tool-calling agent loop.
//
// An Agent alternates between asking a Model for the next assistant message and
// executing the tool invocations that message carries. Every message the run
// produces is yielded, in order, as a StepEvent from Stream.
// Consumers pull events one at a time; nothing runs ahead of the consumer.
package agent
