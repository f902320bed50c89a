// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/cmd/agents/commands"
	"github.com/bureau-foundation/agent-templates/lib/clock"
	"github.com/bureau-foundation/agent-templates/lib/tui"
)

func main() {
	console := cli.NewConsole(os.Stdout, os.Stderr)
	if err := run(console); err != nil {
		// Commands that already reported their outcome (a cancelled
		// picker) return an ExitError carrying only the status.
		var exitError *cli.ExitError
		if !errors.As(err, &exitError) {
			console.Error(err)
		}
		os.Exit(cli.ExitCodeFor(err))
	}
}

func run(console *cli.Console) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	environment := &commands.Environment{
		Console: console,
		Clock:   clock.Real(),
		Interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		Pick: func(ctx context.Context, title string, candidates []tui.Candidate) (string, error) {
			return tui.RunPicker(ctx, title, candidates, os.Stdin, os.Stdout)
		},
	}
	return commands.Root(environment).Execute(ctx, os.Args[1:])
}
