// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// inlineStyle is the emphasis in effect for a run of inline content.
type inlineStyle struct {
	bold          bool
	italic        bool
	strikethrough bool
}

// inline renders the inline children of node as a single styled
// string. Hard line breaks are kept as newlines.
func (renderer *blockRenderer) inline(node ast.Node, current inlineStyle) string {
	var builder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		renderer.inlineNode(&builder, child, current)
	}
	return builder.String()
}

func (renderer *blockRenderer) inlineNode(builder *strings.Builder, node ast.Node, current inlineStyle) {
	switch node := node.(type) {
	case *ast.Text:
		builder.WriteString(renderer.styledText(string(node.Segment.Value(renderer.source)), current))
		switch {
		case node.HardLineBreak():
			builder.WriteString("\n")
		case node.SoftLineBreak():
			builder.WriteString(" ")
		}

	case *ast.String:
		builder.WriteString(renderer.styledText(string(node.Value), current))

	case *ast.Emphasis:
		nested := current
		if node.Level >= 2 {
			nested.bold = true
		} else {
			nested.italic = true
		}
		builder.WriteString(renderer.inline(node, nested))

	case *extast.Strikethrough:
		nested := current
		nested.strikethrough = true
		builder.WriteString(renderer.inline(node, nested))

	case *ast.CodeSpan:
		code := renderer.plainText(node)
		builder.WriteString(renderer.style().Foreground(renderer.theme.Faint).Render(code))

	case *ast.Link:
		label := renderer.inline(node, current)
		builder.WriteString(label)
		destination := string(node.Destination)
		if destination != "" && destination != renderer.plainText(node) {
			builder.WriteString(" " + renderer.style().Foreground(renderer.theme.Faint).Render("("+destination+")"))
		}

	case *ast.AutoLink:
		builder.WriteString(renderer.style().Foreground(renderer.theme.Link).Render(string(node.URL(renderer.source))))

	case *ast.Image:
		faint := renderer.style().Foreground(renderer.theme.Faint)
		builder.WriteString(faint.Render("[" + renderer.plainText(node) + "]"))
		if destination := string(node.Destination); destination != "" {
			builder.WriteString(" " + faint.Render("("+destination+")"))
		}

	case *ast.RawHTML:
		var html strings.Builder
		for index := 0; index < node.Segments.Len(); index++ {
			segment := node.Segments.At(index)
			html.Write(segment.Value(renderer.source))
		}
		if stripped := stripTags(html.String()); stripped != "" {
			builder.WriteString(renderer.style().Foreground(renderer.theme.Faint).Render(stripped))
		}

	case *extast.TaskCheckBox:
		if node.IsChecked {
			builder.WriteString(renderer.style().Foreground(renderer.theme.Checked).Render("[x]") + " ")
		} else {
			builder.WriteString(renderer.styledText("[ ] ", current))
		}

	default:
		builder.WriteString(renderer.inline(node, current))
	}
}

func (renderer *blockRenderer) styledText(content string, current inlineStyle) string {
	if content == "" {
		return ""
	}
	return renderer.style().
		Foreground(renderer.theme.Text).
		Bold(current.bold).
		Italic(current.italic).
		Strikethrough(current.strikethrough).
		Render(content)
}

// plainText returns the unstyled text content of an inline subtree.
func (renderer *blockRenderer) plainText(node ast.Node) string {
	var builder strings.Builder
	_ = ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch child := child.(type) {
		case *ast.Text:
			builder.Write(child.Segment.Value(renderer.source))
		case *ast.String:
			builder.Write(child.Value)
		}
		return ast.WalkContinue, nil
	})
	return builder.String()
}
