// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional codeviewx YAML configuration file and .env files.
//
// Precedence is explicit flags and environment variables, then the file, then defaults.
// Callers load the file with Load and apply flag values with Apply.
package config
