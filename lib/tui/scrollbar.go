// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar renders a one-column scrollbar, height rows tall, for
// a list of total items showing visible of them from offset. When the
// whole list fits the column is blank so the layout does not shift as
// the filter narrows the list.
func RenderScrollbar(theme Theme, height, total, visible, offset int) string {
	if height <= 0 {
		return ""
	}
	if total <= visible {
		return strings.TrimSuffix(strings.Repeat(" \n", height), "\n")
	}

	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	thumb := lipgloss.NewStyle().Foreground(theme.AccentColor).Render("┃")

	start, size := thumbSpan(height, total, visible, offset)
	rows := make([]string, height)
	for row := range rows {
		rows[row] = track
		if row >= start && row < start+size {
			rows[row] = thumb
		}
	}
	return strings.Join(rows, "\n")
}

// thumbSpan returns the first row and length of the thumb. Its length
// is proportional to the visible share of the list, at least one row,
// and it reaches the last row exactly when the list is scrolled to the
// end.
func thumbSpan(height, total, visible, offset int) (start, size int) {
	size = max(height*visible/total, 1)
	travel := height - size
	scrollable := total - visible
	offset = min(max(offset, 0), scrollable)
	if travel > 0 && scrollable > 0 {
		start = offset * travel / scrollable
	}
	return start, size
}
