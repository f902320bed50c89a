// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

const columnSeparator = "  "

// table renders a GFM table with aligned columns. Columns shrink
// proportionally when the table is wider than width, with a floor of
// three cells each; cells that no longer fit are truncated.
func (renderer *blockRenderer) table(node *extast.Table, width int) []string {
	var header []string
	var rows [][]string
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extast.TableHeader:
			header = renderer.tableCells(child)
		case *extast.TableRow:
			rows = append(rows, renderer.tableCells(child))
		}
	}

	columns := len(header)
	for _, row := range rows {
		columns = max(columns, len(row))
	}
	if columns == 0 {
		return nil
	}

	widths := make([]int, columns)
	for _, row := range append([][]string{header}, rows...) {
		for index, cell := range row {
			widths[index] = max(widths[index], lipgloss.Width(cell))
		}
	}

	total := len(columnSeparator) * (columns - 1)
	for _, columnWidth := range widths {
		total += columnWidth
	}
	if total > width {
		usable := max(width-len(columnSeparator)*(columns-1), columns*3)
		contentTotal := total - len(columnSeparator)*(columns-1)
		for index := range widths {
			widths[index] = max(widths[index]*usable/contentTotal, 3)
		}
	}

	var lines []string
	if len(header) > 0 {
		bold := renderer.style().Bold(true).Foreground(renderer.theme.Text)
		lines = append(lines, bold.Render(formatRow(header, widths, node.Alignments)))

		rules := make([]string, columns)
		for index, columnWidth := range widths {
			rules[index] = strings.Repeat("─", columnWidth)
		}
		lines = append(lines, renderer.style().Foreground(renderer.theme.Border).Render(strings.Join(rules, columnSeparator)))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, node.Alignments))
	}
	return lines
}

func (renderer *blockRenderer) tableCells(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); ok {
			cells = append(cells, renderer.inline(cell, inlineStyle{}))
		}
	}
	return cells
}

func formatRow(cells []string, widths []int, alignments []extast.Alignment) string {
	parts := make([]string, len(widths))
	for index, columnWidth := range widths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}
		if lipgloss.Width(cell) > columnWidth {
			cell = ansi.Truncate(cell, columnWidth, "…")
		}
		padding := max(columnWidth-lipgloss.Width(cell), 0)

		alignment := extast.AlignNone
		if index < len(alignments) {
			alignment = alignments[index]
		}
		switch alignment {
		case extast.AlignRight:
			cell = strings.Repeat(" ", padding) + cell
		case extast.AlignCenter:
			left := padding / 2
			cell = strings.Repeat(" ", left) + cell + strings.Repeat(" ", padding-left)
		default:
			cell += strings.Repeat(" ", padding)
		}
		parts[index] = cell
	}
	return strings.TrimRight(strings.Join(parts, columnSeparator), " ")
}
