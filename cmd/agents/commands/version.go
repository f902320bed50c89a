// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/lib/version"
)

func versionCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print build information",
		Run: func(ctx context.Context, args []string) error {
			environment.Console.Info("agents %s", version.Full())
			return nil
		},
	}
}
