// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// formatterFor maps a color profile to the chroma terminal formatter
// that emits the matching escape sequences. Ascii has none.
func formatterFor(profile termenv.Profile) chroma.Formatter {
	switch profile {
	case termenv.TrueColor:
		return formatters.Get("terminal16m")
	case termenv.ANSI256:
		return formatters.Get("terminal256")
	case termenv.ANSI:
		return formatters.Get("terminal")
	}
	return nil
}

// highlight syntax-highlights code in the given language. Code in an
// unknown language, or any chroma failure, is rendered with fallback.
func highlight(code, language, styleName string, profile termenv.Profile, fallback lipgloss.Style) string {
	plain := func() string {
		lines := strings.Split(code, "\n")
		for index, line := range lines {
			lines[index] = fallback.Render(line)
		}
		return strings.Join(lines, "\n")
	}

	formatter := formatterFor(profile)
	if formatter == nil || language == "" {
		return plain()
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return plain()
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain()
	}
	var builder strings.Builder
	if err := formatter.Format(&builder, styles.Get(styleName), iterator); err != nil {
		return plain()
	}
	return strings.TrimRight(builder.String(), "\n")
}
