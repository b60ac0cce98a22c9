// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package toolregistry

// Tool names shared by the tool packages and the progress reporter.
const (
	ReadFile       = "read_real_file"
	WriteFile      = "write_real_file"
	ListDirectory  = "list_real_directory"
	RipgrepSearch  = "ripgrep_search"
	ExecuteCommand = "execute_command"
	WriteTodos     = "write_todos"
)
