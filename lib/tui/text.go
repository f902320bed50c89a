// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TruncateLine shortens a possibly-styled line to maxWidth display
// cells, ending it with an ellipsis when anything was cut.
func TruncateLine(line string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(line) <= maxWidth {
		return line
	}
	return ansi.Truncate(line, maxWidth, "…")
}

// PadLine right-pads a possibly-styled line with spaces to width
// display cells.
func PadLine(line string, width int) string {
	padding := width - ansi.StringWidth(line)
	if padding <= 0 {
		return line
	}
	return line + strings.Repeat(" ", padding)
}
