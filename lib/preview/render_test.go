// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func renderPlain(t *testing.T, markdown string, width int) string {
	t.Helper()
	return Render([]byte(markdown), Options{Width: width, Profile: termenv.Ascii})
}

func TestRenderEmpty(t *testing.T) {
	if got := renderPlain(t, "", 80); got != "" {
		t.Errorf("Render(empty) = %q", got)
	}
}

func TestRenderHeadingAndParagraph(t *testing.T) {
	got := renderPlain(t, "# Code review\n\nReview **every** pull\nrequest carefully.\n", 80)
	want := "Code review\n═══════════\n\nReview every pull request carefully."
	if got != want {
		t.Errorf("Render:\ngot  %q\nwant %q", got, want)
	}
}

func TestRenderWrapsToWidth(t *testing.T) {
	paragraph := strings.Repeat("instructions for the agent ", 10)
	got := renderPlain(t, paragraph, 30)

	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into several lines, got %q", got)
	}
	for _, line := range lines {
		if width := ansi.StringWidth(line); width > 30 {
			t.Errorf("line %q is %d cells wide, limit 30", line, width)
		}
	}
}

func TestRenderLists(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "tight bullets",
			markdown: "- first item\n- second item\n",
			want:     "- first item\n- second item",
		},
		{
			name:     "ordered from start number",
			markdown: "3. three\n4. four\n",
			want:     "3. three\n4. four",
		},
		{
			name:     "loose list",
			markdown: "- a\n\n- b\n",
			want:     "- a\n\n- b",
		},
		{
			name:     "nested",
			markdown: "- outer\n  - inner\n",
			want:     "- outer\n  - inner",
		},
		{
			name:     "task items",
			markdown: "- [x] done\n- [ ] todo\n",
			want:     "- [x] done\n- [ ] todo",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := renderPlain(t, test.markdown, 80); got != test.want {
				t.Errorf("Render:\ngot  %q\nwant %q", got, test.want)
			}
		})
	}
}

func TestRenderBlockquote(t *testing.T) {
	got := renderPlain(t, "> quoted text\n", 80)
	if got != "│ quoted text" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderCodeBlocks(t *testing.T) {
	got := renderPlain(t, "Before\n\n```go\nfunc main() {}\n```\n\n    indented code\n", 80)
	for _, want := range []string{"Before", "func main() {}", "indented code"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "```") {
		t.Errorf("fence markers leaked into output:\n%s", got)
	}
}

func TestRenderLinks(t *testing.T) {
	got := renderPlain(t, "See [docs](https://example.com) or <https://bureau.dev>.\n", 80)
	want := "See docs (https://example.com) or https://bureau.dev."
	if got != want {
		t.Errorf("Render:\ngot  %q\nwant %q", got, want)
	}
}

func TestRenderTable(t *testing.T) {
	markdown := "| Name | Count |\n|:-----|------:|\n| a | 1 |\n| bb | 22 |\n"
	got := renderPlain(t, markdown, 80)
	want := strings.Join([]string{
		"Name  Count",
		"────  ─────",
		"a         1",
		"bb       22",
	}, "\n")
	if got != want {
		t.Errorf("Render:\ngot  %q\nwant %q", got, want)
	}
}

func TestRenderThematicBreak(t *testing.T) {
	got := renderPlain(t, "above\n\n---\n\nbelow\n", 24)
	want := "above\n\n" + strings.Repeat("─", 24) + "\n\nbelow"
	if got != want {
		t.Errorf("Render:\ngot  %q\nwant %q", got, want)
	}
}

func TestRenderColorProfile(t *testing.T) {
	markdown := "# Title\n\nSome *styled* text.\n\n```go\nvar answer = 42\n```\n"
	colored := Render([]byte(markdown), Options{Width: 80, Profile: termenv.ANSI256})
	if !strings.Contains(colored, "\x1b[") {
		t.Fatalf("expected ANSI escapes with ANSI256 profile, got %q", colored)
	}
	stripped := ansi.Strip(colored)
	for _, want := range []string{"Title", "Some styled text.", "var answer = 42"} {
		if !strings.Contains(stripped, want) {
			t.Errorf("stripped output missing %q:\n%s", want, stripped)
		}
	}

	plain := renderPlain(t, markdown, 80)
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("Ascii profile produced escapes: %q", plain)
	}
}

func TestStripTags(t *testing.T) {
	if got := stripTags("<details><summary>More</summary></details>"); got != "More" {
		t.Errorf("stripTags = %q", got)
	}
}
