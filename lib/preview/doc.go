// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package preview renders a template's instruction markdown (AGENTS.md
// and friends) for display in a terminal.
//
// Markdown is parsed with goldmark (GFM extensions enabled), fenced
// code is highlighted with chroma, and styling goes through a lipgloss
// renderer pinned to the caller's termenv color profile. With the
// [termenv.Ascii] profile the output is plain text with the same
// layout, which is what non-terminal output and tests use.
//
// Soft line breaks become spaces and paragraphs are re-wrapped to the
// requested width with ANSI-aware wrapping, so hard-wrapped source
// reflows at any terminal size.
package preview
