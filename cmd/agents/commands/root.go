// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands implements the agents command tree: loading templates
// from the registry into a project, inspecting the catalog and the local
// manifest, and cutting template releases in a registry checkout.
package commands

import (
	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
)

// Root returns the top-level agents command.
func Root(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "agents",
		Summary: "Load agent templates and their dependencies into a project",
		Description: `agents fetches agent instruction templates from a GitHub-hosted
registry. A template is a directory of files plus a template.yaml that
names its version and the templates it depends on; loading one pulls in
the whole dependency tree and records what was loaded.`,
		Usage:      "agents <command> [flags]",
		HelpOutput: environment.Console.Out(),
		Subcommands: []*cli.Command{
			loadCommand(environment),
			listCommand(environment),
			showCommand(environment),
			statusCommand(environment),
			releaseCommand(environment),
			versionCommand(environment),
		},
	}
}
