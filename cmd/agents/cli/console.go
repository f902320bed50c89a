// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

// Console writes user-facing output: results and progress to stdout,
// warnings and errors to stderr. Styling follows the color profile of
// stdout, so piped output and NO_COLOR environments get plain text.
type Console struct {
	stdout  io.Writer
	stderr  io.Writer
	profile termenv.Profile

	plain   lipgloss.Style
	bold    lipgloss.Style
	faint   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	accent  lipgloss.Style
}

// NewConsole returns a console whose color profile is detected from
// stdout and the environment.
func NewConsole(stdout, stderr io.Writer) *Console {
	return NewConsoleWithProfile(stdout, stderr, termenv.NewOutput(stdout).EnvColorProfile())
}

// NewConsoleWithProfile returns a console with a fixed color profile.
// Tests use termenv.Ascii for stable output.
func NewConsoleWithProfile(stdout, stderr io.Writer, profile termenv.Profile) *Console {
	renderer := lipgloss.NewRenderer(stdout, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &Console{
		stdout:  stdout,
		stderr:  stderr,
		profile: profile,
		plain:   renderer.NewStyle(),
		bold:    renderer.NewStyle().Bold(true),
		faint:   renderer.NewStyle().Faint(true),
		success: renderer.NewStyle().Foreground(lipgloss.Color("114")),
		warning: renderer.NewStyle().Foreground(lipgloss.Color("220")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		accent:  renderer.NewStyle().Foreground(lipgloss.Color("75")),
	}
}

// Out returns the stdout writer, for tables and JSON.
func (console *Console) Out() io.Writer { return console.stdout }

// Profile returns the color profile used for styling.
func (console *Console) Profile() termenv.Profile { return console.profile }

// Width returns the terminal width of stdout, or 80 when stdout is not
// a terminal.
func (console *Console) Width() int {
	if file, ok := console.stdout.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// Info prints a plain line to stdout.
func (console *Console) Info(format string, args ...any) {
	fmt.Fprintln(console.stdout, console.plain.Render(fmt.Sprintf(format, args...)))
}

// Heading prints a bold line to stdout.
func (console *Console) Heading(format string, args ...any) {
	fmt.Fprintln(console.stdout, console.bold.Render(fmt.Sprintf(format, args...)))
}

// Notice prints a de-emphasized line to stdout.
func (console *Console) Notice(format string, args ...any) {
	fmt.Fprintln(console.stdout, console.faint.Render(fmt.Sprintf(format, args...)))
}

// Success prints a highlighted completion line to stdout.
func (console *Console) Success(format string, args ...any) {
	fmt.Fprintln(console.stdout, console.success.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a warning line to stderr.
func (console *Console) Warn(format string, args ...any) {
	fmt.Fprintln(console.stderr, console.warning.Render("warning: "+fmt.Sprintf(format, args...)))
}

// Error prints err to stderr with a highlighted "error:" label.
func (console *Console) Error(err error) {
	fmt.Fprintf(console.stderr, "%s %v\n", console.failure.Render("error:"), err)
}

// Accent styles text, typically a template name, for inline use.
func (console *Console) Accent(text string) string {
	return console.accent.Render(text)
}

// Faint styles text for inline use.
func (console *Console) Faint(text string) string {
	return console.faint.Render(text)
}
