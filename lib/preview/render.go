// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultWidth is used when Options.Width is not positive.
const DefaultWidth = 80

// minimumWidth keeps deeply nested content from wrapping one word per
// line.
const minimumWidth = 20

const wrapBreakpoints = " ,.;-+|"

// Theme holds the colors used for rendered markdown.
type Theme struct {
	Text    lipgloss.Color
	Faint   lipgloss.Color
	Heading lipgloss.Color
	Border  lipgloss.Color
	Link    lipgloss.Color
	Checked lipgloss.Color

	// CodeStyle names the chroma style for fenced code blocks.
	CodeStyle string
}

// DefaultTheme suits dark 256-color terminals.
var DefaultTheme = Theme{
	Text:      lipgloss.Color("252"),
	Faint:     lipgloss.Color("245"),
	Heading:   lipgloss.Color("255"),
	Border:    lipgloss.Color("240"),
	Link:      lipgloss.Color("75"),
	Checked:   lipgloss.Color("114"),
	CodeStyle: "monokai",
}

// Options controls rendering.
type Options struct {
	Width   int
	Profile termenv.Profile
	Theme   Theme
}

var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func markdownParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return parserInstance
}

// Render returns source formatted for a terminal. Trailing blank lines
// are trimmed.
func Render(source []byte, options Options) string {
	if len(source) == 0 {
		return ""
	}
	if options.Width <= 0 {
		options.Width = DefaultWidth
	}
	if options.Theme == (Theme{}) {
		options.Theme = DefaultTheme
	}

	// SetColorProfile is required: the renderer otherwise re-detects
	// the profile from the environment and ignores the output's.
	styles := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(options.Profile))
	styles.SetColorProfile(options.Profile)

	renderer := &blockRenderer{
		source:  source,
		theme:   options.Theme,
		profile: options.Profile,
		styles:  styles,
	}
	document := markdownParser().Parser().Parse(text.NewReader(source))
	lines := renderer.children(document, options.Width, false)
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

type blockRenderer struct {
	source  []byte
	theme   Theme
	profile termenv.Profile
	styles  *lipgloss.Renderer
}

func (renderer *blockRenderer) style() lipgloss.Style {
	return renderer.styles.NewStyle()
}

// children renders each block child of parent and joins them. Blocks
// are separated by a blank line unless tight is set, as for the
// paragraphs of a tight list item.
func (renderer *blockRenderer) children(parent ast.Node, width int, tight bool) []string {
	width = max(width, minimumWidth)
	var lines []string
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		block := renderer.block(child, width)
		if len(block) == 0 {
			continue
		}
		if len(lines) > 0 && !tight {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	return lines
}

func (renderer *blockRenderer) block(node ast.Node, width int) []string {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return renderer.wrap(renderer.inline(node, inlineStyle{}), width)

	case *ast.Heading:
		return renderer.heading(node, width)

	case *ast.FencedCodeBlock:
		code := renderer.blockText(node)
		return strings.Split(highlight(code, string(node.Language(renderer.source)), renderer.theme.CodeStyle, renderer.profile, renderer.style().Foreground(renderer.theme.Faint)), "\n")

	case *ast.CodeBlock:
		faint := renderer.style().Foreground(renderer.theme.Faint)
		var lines []string
		for _, line := range strings.Split(renderer.blockText(node), "\n") {
			lines = append(lines, faint.Render(line))
		}
		return lines

	case *ast.Blockquote:
		bar := renderer.style().Foreground(renderer.theme.Border).Render("│") + " "
		return prefixLines(renderer.children(node, width-2, false), bar, bar)

	case *ast.List:
		return renderer.list(node, width)

	case *ast.ThematicBreak:
		return []string{renderer.style().Foreground(renderer.theme.Border).Render(strings.Repeat("─", width))}

	case *ast.HTMLBlock:
		stripped := strings.TrimSpace(stripTags(renderer.blockText(node)))
		if stripped == "" {
			return nil
		}
		return renderer.wrap(renderer.style().Foreground(renderer.theme.Faint).Render(stripped), width)

	case *extast.Table:
		return renderer.table(node, width)
	}

	// Unknown block types fall back to their children.
	return renderer.children(node, width, false)
}

func (renderer *blockRenderer) heading(node *ast.Heading, width int) []string {
	content := ansi.Strip(renderer.inline(node, inlineStyle{}))
	if content == "" {
		return nil
	}
	style := renderer.style().Bold(true).Foreground(renderer.theme.Text)
	if node.Level <= 2 {
		style = style.Foreground(renderer.theme.Heading)
	}
	lines := renderer.wrap(style.Render(content), width)
	if node.Level == 1 {
		underline := strings.Repeat("═", min(ansi.StringWidth(content), width))
		lines = append(lines, renderer.style().Foreground(renderer.theme.Border).Render(underline))
	}
	return lines
}

func (renderer *blockRenderer) list(node *ast.List, width int) []string {
	number := node.Start
	var bullets []string
	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		if node.IsOrdered() {
			bullets = append(bullets, fmt.Sprintf("%d. ", number))
			number++
		} else {
			bullets = append(bullets, "- ")
		}
	}
	bulletWidth := 0
	for _, bullet := range bullets {
		bulletWidth = max(bulletWidth, len(bullet))
	}

	var lines []string
	index := 0
	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		if index > 0 && !node.IsTight {
			lines = append(lines, "")
		}
		bullet := fmt.Sprintf("%-*s", bulletWidth, bullets[index])
		body := renderer.children(item, width-bulletWidth, node.IsTight)
		if len(body) == 0 {
			body = []string{""}
		}
		lines = append(lines, prefixLines(body, bullet, strings.Repeat(" ", bulletWidth))...)
		index++
	}
	return lines
}

func (renderer *blockRenderer) wrap(content string, width int) []string {
	if content == "" {
		return nil
	}
	return strings.Split(ansi.Wrap(content, width, wrapBreakpoints), "\n")
}

// blockText concatenates the raw source lines of a leaf block.
func (renderer *blockRenderer) blockText(node ast.Node) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(renderer.source))
	}
	return strings.TrimRight(builder.String(), "\n")
}

func prefixLines(lines []string, first, rest string) []string {
	prefixed := make([]string, len(lines))
	for index, line := range lines {
		prefix := rest
		if index == 0 {
			prefix = first
		}
		if line == "" {
			prefixed[index] = strings.TrimRight(prefix, " ")
			continue
		}
		prefixed[index] = prefix + line
	}
	return prefixed
}

// stripTags removes HTML tags, keeping their text content.
func stripTags(html string) string {
	var result strings.Builder
	inTag := false
	for _, character := range html {
		switch {
		case character == '<':
			inTag = true
		case character == '>':
			inTag = false
		case !inTag:
			result.WriteRune(character)
		}
	}
	return result.String()
}
