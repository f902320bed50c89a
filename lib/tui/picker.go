// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"
)

// ErrCancelled is returned by RunPicker when the user dismisses the
// picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

const (
	defaultWidth  = 80
	defaultHeight = 20

	// Rows used by the title, filter input, blank separator and help.
	chromeRows = 4
)

// Picker is a bubbletea model that lets the user filter a list of
// candidates and choose one.
type Picker struct {
	title      string
	candidates []Candidate
	ranked     []RankedCandidate

	input  textinput.Model
	keys   KeyMap
	theme  Theme
	slab   *util.Slab
	cursor int
	offset int
	width  int
	height int

	chosen    *Candidate
	cancelled bool
}

// NewPicker returns a picker over candidates with a focused filter.
func NewPicker(title string, candidates []Candidate, theme Theme) Picker {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = "> "
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.AccentColor)
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.FaintText)
	input.Focus()

	picker := Picker{
		title:      title,
		candidates: candidates,
		input:      input,
		keys:       DefaultKeyMap,
		theme:      theme,
		slab:       NewSlab(),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	picker.ranked = Rank(candidates, "", picker.slab)
	return picker
}

// Selected returns the chosen candidate once the picker has finished.
func (picker Picker) Selected() (Candidate, bool) {
	if picker.chosen == nil {
		return Candidate{}, false
	}
	return *picker.chosen, true
}

// Cancelled reports whether the user dismissed the picker.
func (picker Picker) Cancelled() bool {
	return picker.cancelled
}

// Matches returns the candidates visible for the current query, best
// first.
func (picker Picker) Matches() []RankedCandidate {
	return picker.ranked
}

func (picker Picker) Init() tea.Cmd {
	return textinput.Blink
}

func (picker Picker) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		picker.width = message.Width
		picker.height = message.Height
		picker.clampScroll()
		return picker, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(message, picker.keys.Cancel):
			picker.cancelled = true
			return picker, tea.Quit
		case key.Matches(message, picker.keys.Select):
			if len(picker.ranked) == 0 {
				return picker, nil
			}
			chosen := picker.ranked[picker.cursor].Candidate
			picker.chosen = &chosen
			return picker, tea.Quit
		case key.Matches(message, picker.keys.Up):
			picker.move(-1)
			return picker, nil
		case key.Matches(message, picker.keys.Down):
			picker.move(1)
			return picker, nil
		case key.Matches(message, picker.keys.PageUp):
			picker.move(-picker.visibleRows())
			return picker, nil
		case key.Matches(message, picker.keys.PageDown):
			picker.move(picker.visibleRows())
			return picker, nil
		}
	}

	previous := picker.input.Value()
	var command tea.Cmd
	picker.input, command = picker.input.Update(message)
	if picker.input.Value() != previous {
		picker.ranked = Rank(picker.candidates, picker.input.Value(), picker.slab)
		picker.cursor = 0
		picker.offset = 0
	}
	return picker, command
}

func (picker *Picker) move(delta int) {
	if len(picker.ranked) == 0 {
		return
	}
	picker.cursor = min(max(picker.cursor+delta, 0), len(picker.ranked)-1)
	picker.clampScroll()
}

func (picker *Picker) clampScroll() {
	rows := picker.visibleRows()
	if picker.cursor < picker.offset {
		picker.offset = picker.cursor
	}
	if picker.cursor >= picker.offset+rows {
		picker.offset = picker.cursor - rows + 1
	}
	picker.offset = max(min(picker.offset, len(picker.ranked)-rows), 0)
}

func (picker Picker) visibleRows() int {
	return max(picker.height-chromeRows, 1)
}

func (picker Picker) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(picker.theme.HeaderForeground)
	helpStyle := lipgloss.NewStyle().Foreground(picker.theme.HelpText)

	var builder strings.Builder
	builder.WriteString(titleStyle.Render(picker.title))
	builder.WriteString("\n")
	builder.WriteString(picker.input.View())
	builder.WriteString("\n\n")

	rows := picker.visibleRows()
	listWidth := max(picker.width-2, 10)
	var lines []string
	if len(picker.ranked) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(picker.theme.FaintText).Render("  no matching templates"))
	}
	end := min(picker.offset+rows, len(picker.ranked))
	for index := picker.offset; index < end; index++ {
		lines = append(lines, picker.renderRow(picker.ranked[index], index == picker.cursor, listWidth))
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", listWidth))
	}

	scrollbar := RenderScrollbar(picker.theme, rows, len(picker.ranked), rows, picker.offset)
	builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), " ", scrollbar))
	builder.WriteString("\n")

	help := fmt.Sprintf("%d/%d  %s select  %s cancel  %s/%s move",
		len(picker.ranked), len(picker.candidates),
		picker.keys.Select.Help().Key, picker.keys.Cancel.Help().Key,
		picker.keys.Up.Help().Key, picker.keys.Down.Help().Key)
	builder.WriteString(helpStyle.Render(help))
	return builder.String()
}

func (picker Picker) renderRow(candidate RankedCandidate, selected bool, width int) string {
	normal := lipgloss.NewStyle().Foreground(picker.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(picker.theme.FaintText)
	match := lipgloss.NewStyle().Foreground(picker.theme.MatchForeground).Bold(true)
	version := lipgloss.NewStyle().Foreground(picker.theme.VersionForeground)
	if selected {
		normal = normal.Foreground(picker.theme.SelectedForeground).Background(picker.theme.SelectedBackground)
		faint = faint.Background(picker.theme.SelectedBackground)
		match = match.Background(picker.theme.SelectedBackground)
		version = version.Background(picker.theme.SelectedBackground)
	}

	highlighted := make(map[int]bool, len(candidate.NamePositions))
	for _, position := range candidate.NamePositions {
		highlighted[position] = true
	}

	var row strings.Builder
	marker := "  "
	if selected {
		marker = "▸ "
	}
	row.WriteString(normal.Render(marker))
	for index, character := range []rune(candidate.Name) {
		if highlighted[index] {
			row.WriteString(match.Render(string(character)))
		} else {
			row.WriteString(normal.Render(string(character)))
		}
	}
	if candidate.Version != "" {
		row.WriteString(normal.Render(" "))
		row.WriteString(version.Render(candidate.Version))
	}
	if candidate.Description != "" {
		row.WriteString(faint.Render("  " + candidate.Description))
	}

	line := TruncateLine(row.String(), width)
	if selected {
		return line + normal.Render(strings.Repeat(" ", max(width-lipgloss.Width(line), 0)))
	}
	return PadLine(line, width)
}

// RunPicker shows the picker on the given terminal streams and returns
// the chosen candidate's name. It returns ErrCancelled when the user
// dismisses the picker and ctx's error when ctx ends first.
func RunPicker(ctx context.Context, title string, candidates []Candidate, input io.Reader, output io.Writer) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("no templates to choose from")
	}

	program := tea.NewProgram(NewPicker(title, candidates, DefaultTheme),
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("running template picker: %w", err)
	}

	picker, ok := final.(Picker)
	if !ok {
		return "", fmt.Errorf("template picker returned unexpected model %T", final)
	}
	candidate, chosen := picker.Selected()
	if !chosen {
		return "", ErrCancelled
	}
	return candidate.Name, nil
}
