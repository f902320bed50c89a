// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/lib/template"
)

type listParams struct {
	globalParams
	cli.JSONOutput
	Ref string `json:"ref" flag:"ref" desc:"branch to list templates from (default: registry default branch)"`
}

func listCommand(environment *Environment) *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List templates available in the registry",
		Description: `List the templates on the registry's default branch with their
descriptions and latest release tags.`,
		Usage: "agents list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("list takes no arguments, got %q", args)
			}
			return runList(ctx, environment, &params)
		},
	}
}

func runList(ctx context.Context, environment *Environment, params *listParams) error {
	cfg, err := params.loadConfig()
	if err != nil {
		return err
	}
	logger := environment.logger(&params.globalParams)
	templates, err := environment.openRegistry(cfg, logger)
	if err != nil {
		return err
	}

	branch := cfg.Registry.DefaultBranch
	if params.Ref != "" {
		branch = params.Ref
	}
	entries, err := listCatalog(ctx, templates, template.Revision(branch), logger)
	if err != nil {
		return categorize(err)
	}

	if done, err := params.EmitJSON(environment.Console.Out(), entries); done {
		return err
	}

	if len(entries) == 0 {
		environment.Console.Notice("No templates found in %s at %s", templates.Source(), branch)
		return nil
	}

	writer := tabwriter.NewWriter(environment.Console.Out(), 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "NAME\tLATEST\tDESCRIPTION")
	for _, entry := range entries {
		latest := template.TagVersion(entry.Name, entry.LatestTag)
		if latest == "" {
			latest = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", entry.Name, latest, entry.Description)
	}
	return writer.Flush()
}
