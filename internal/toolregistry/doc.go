// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package toolregistry provides a registry of the tools exposed to the agent.
// Tool packages contribute through a Register function; the Registry
// satisfies the agent.ToolExecutor interface.
package toolregistry
