// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "agents",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(ctx context.Context, args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "load",
				Run: func(ctx context.Context, args []string) error {
					called = "load"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"load"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "load" {
		t.Errorf("dispatched to %q, want %q", called, "load")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "agents",
		Subcommands: []*Command{
			{
				Name: "release",
				Subcommands: []*Command{
					{
						Name: "bump",
						Run: func(ctx context.Context, args []string) error {
							called = "release bump"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"release", "bump", "review"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "release bump" {
		t.Errorf("dispatched to %q, want %q", called, "release bump")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "review" {
		t.Errorf("args = %v, want [review]", receivedArgs)
	}
}

func TestCommand_Execute_PassesContext(t *testing.T) {
	type contextKey struct{}
	ctx := context.WithValue(context.Background(), contextKey{}, "marker")

	var received any
	command := &Command{
		Name: "status",
		Run: func(ctx context.Context, args []string) error {
			received = ctx.Value(contextKey{})
			return nil
		},
	}
	if err := command.Execute(ctx, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if received != "marker" {
		t.Errorf("context value = %v, want marker", received)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var dir string
	var positional []string

	command := &Command{
		Name: "load",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("load", pflag.ContinueOnError)
			flagSet.StringVar(&dir, "dir", ".agents", "target directory")
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--dir", "/tmp/out", "review@v1.0.0"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if dir != "/tmp/out" {
		t.Errorf("dir = %q, want %q", dir, "/tmp/out")
	}
	if len(positional) != 1 || positional[0] != "review@v1.0.0" {
		t.Errorf("args = %v, want [review@v1.0.0]", positional)
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "agents",
		Subcommands: []*Command{
			{Name: "load", Run: func(context.Context, []string) error { return nil }},
			{Name: "list", Run: func(context.Context, []string) error { return nil }},
			{Name: "status", Run: func(context.Context, []string) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"stauts"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "status"?`) {
		t.Errorf("error = %q, want suggestion for status", err)
	}
	if CategoryOf(err) != CategoryValidation {
		t.Errorf("category = %q, want validation", CategoryOf(err))
	}
	if ExitCodeFor(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", ExitCodeFor(err), ExitUsage)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	var params struct {
		Dir string `flag:"dir" desc:"target directory"`
	}
	command := &Command{
		Name:  "load",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("load", &params) },
		Run:   func(context.Context, []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--dri", "x"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --dir?") {
		t.Errorf("error = %q, want --dir suggestion", err)
	}
	if ExitCodeFor(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", ExitCodeFor(err), ExitUsage)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "agents",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "load", Summary: "Load a template", Run: func(context.Context, []string) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil)
	if CategoryOf(err) != CategoryValidation {
		t.Fatalf("error = %v, want validation error", err)
	}
	if !strings.Contains(help.String(), "Load a template") {
		t.Errorf("help output missing subcommand summary:\n%s", help.String())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	var params struct {
		Dir string `flag:"dir,d" desc:"target directory" default:".agents"`
	}
	root := &Command{
		Name:       "agents",
		HelpOutput: &help,
		Subcommands: []*Command{
			{
				Name:        "load",
				Description: "Load a template and its dependencies.",
				Flags:       func() *pflag.FlagSet { return FlagsFromParams("load", &params) },
				Examples: []Example{
					{Description: "Load a pinned version", Command: "agents load review@v1.2.0"},
				},
				Run: func(context.Context, []string) error {
					t.Error("Run should not be called for --help")
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"load", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	output := help.String()
	for _, want := range []string{
		"Load a template and its dependencies.",
		"agents load [flags]",
		"--dir",
		"target directory",
		"# Load a pinned version",
		"agents load review@v1.2.0",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_RunErrorPassesThrough(t *testing.T) {
	sentinel := errors.New("boom")
	command := &Command{
		Name: "load",
		Run:  func(context.Context, []string) error { return sentinel },
	}
	if err := command.Execute(context.Background(), nil); !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want sentinel", err)
	}
}
