// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package server serves a generated documentation directory as HTML pages.
//
// Markdown is rendered with goldmark, a table of contents is inserted before the first
// heading, and every page carries a sidebar listing the documents in the directory.
// Rendered pages are cached until the source file changes.
package server
