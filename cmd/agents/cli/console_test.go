// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestConsole_PlainOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	console := NewConsoleWithProfile(&stdout, &stderr, termenv.Ascii)

	console.Heading("Loaded %s", "review")
	console.Info("manifest: %s", ".agents/.loaded-templates.yaml")
	console.Notice("skipped %s", "base")
	console.Success("done")
	console.Warn("tag lookup failed for %s", "review")
	console.Error(errors.New("template \"x\" not found"))

	wantStdout := "Loaded review\nmanifest: .agents/.loaded-templates.yaml\nskipped base\ndone\n"
	if stdout.String() != wantStdout {
		t.Errorf("stdout:\ngot  %q\nwant %q", stdout.String(), wantStdout)
	}
	wantStderr := "warning: tag lookup failed for review\nerror: template \"x\" not found\n"
	if stderr.String() != wantStderr {
		t.Errorf("stderr:\ngot  %q\nwant %q", stderr.String(), wantStderr)
	}
	if console.Accent("review") != "review" {
		t.Error("Ascii profile should not style accents")
	}
}

func TestConsole_ColorOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	console := NewConsoleWithProfile(&stdout, &stderr, termenv.ANSI256)

	console.Success("done")
	console.Error(errors.New("boom"))

	if !strings.Contains(stdout.String(), "\x1b[") {
		t.Errorf("expected styled stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "\x1b[") || !strings.Contains(stderr.String(), "boom") {
		t.Errorf("expected styled error label, got %q", stderr.String())
	}
}

func TestConsole_WidthFallback(t *testing.T) {
	console := NewConsoleWithProfile(&bytes.Buffer{}, &bytes.Buffer{}, termenv.Ascii)
	if console.Width() != defaultWidth {
		t.Errorf("Width() = %d, want %d for non-terminal output", console.Width(), defaultWidth)
	}
}

func TestJSONOutput_EmitJSON(t *testing.T) {
	var buffer bytes.Buffer

	disabled := JSONOutput{}
	if done, err := disabled.EmitJSON(&buffer, []string{"a"}); done || err != nil {
		t.Fatalf("EmitJSON without --json = (%v, %v), want (false, nil)", done, err)
	}
	if buffer.Len() != 0 {
		t.Fatalf("nothing should be written without --json, got %q", buffer.String())
	}

	enabled := JSONOutput{OutputJSON: true}
	var entries []string
	if done, err := enabled.EmitJSON(&buffer, entries); !done || err != nil {
		t.Fatalf("EmitJSON with --json = (%v, %v), want (true, nil)", done, err)
	}
	var decoded []string
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded == nil || len(decoded) != 0 {
		t.Errorf("nil slice should encode as [], got %q", buffer.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buffer bytes.Buffer

	quiet := newLogger(&buffer, false, false)
	quiet.Info("hidden")
	quiet.Debug("hidden")
	if buffer.Len() != 0 {
		t.Errorf("non-verbose logger emitted info/debug: %q", buffer.String())
	}
	quiet.Warn("shown", "template", "review")
	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("non-terminal logger should emit JSON: %v (%q)", err, buffer.String())
	}
	if record["template"] != "review" {
		t.Errorf("record = %v, want template=review", record)
	}

	buffer.Reset()
	verbose := newLogger(&buffer, true, true)
	verbose.Debug("resolving", "template", "base")
	if !strings.Contains(buffer.String(), "msg=resolving") {
		t.Errorf("terminal logger should emit text at debug, got %q", buffer.String())
	}
}
