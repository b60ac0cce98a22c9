// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package filesystem provides the agent's file tools: read_real_file,
// write_real_file and list_real_directory.
//
// The tools work on real paths. Failures the agent can act on, such as a missing
// file, are returned as result text starting with "❌ Error:" rather than as Go errors.
package filesystem
