// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package i18n holds the user interface strings in English and Chinese and
// detects the UI and documentation languages from the locale environment.
package i18n
