// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal user interface for choosing a
// template interactively. Built on bubbletea (Elm architecture), the
// [Picker] combines a filter input from bubbles/textinput with fzf's
// fuzzy ranking and renders the ranked list with lipgloss.
//
// The picker is only ever started when stdin and stdout are terminals;
// non-interactive callers must name the template explicitly.
package tui
