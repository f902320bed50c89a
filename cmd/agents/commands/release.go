// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/lib/git"
	"github.com/bureau-foundation/agent-templates/lib/release"
)

func releaseCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "release",
		Summary: "Maintain versions in a template registry checkout",
		Description: `Commands for registry maintainers. They operate on a local clone of
the template registry rather than on the project that loads templates.`,
		Subcommands: []*cli.Command{
			bumpCommand(environment),
		},
	}
}

type bumpParams struct {
	globalParams
	cli.JSONOutput
	Part string `json:"part" flag:"part,p" default:"patch" desc:"version part to increment: patch, minor, or major"`
	Repo string `json:"repo" flag:"repo" default:"." desc:"path inside the registry checkout"`
	Tag  bool   `json:"tag" flag:"tag" desc:"commit the change and create the <name>/v<version> tag"`
}

type bumpResult struct {
	Name            string `json:"name"`
	PreviousVersion string `json:"previous_version"`
	Version         string `json:"version"`
	MetadataPath    string `json:"metadata_path"`
	Tag             string `json:"tag"`
	Tagged          bool   `json:"tagged"`
}

func bumpCommand(environment *Environment) *cli.Command {
	var params bumpParams
	return &cli.Command{
		Name:    "bump",
		Summary: "Increment the version in a template's template.yaml",
		Description: `Rewrite the version field of <templates>/<name>/template.yaml, leaving
the rest of the file untouched. With --tag the change is committed and an
annotated "<name>/v<version>" tag is created; pushing it publishes the
release to everyone running 'agents load'.`,
		Usage: "agents release bump <name> [flags]",
		Examples: []cli.Example{
			{Description: "Bump the patch version", Command: "agents release bump code-review"},
			{Description: "Start a new minor line and tag it", Command: "agents release bump code-review --part minor --tag"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bump", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("release bump takes exactly one template name, got %d arguments", len(args))
			}
			return runBump(ctx, environment, &params, args[0])
		},
	}
}

func runBump(ctx context.Context, environment *Environment, params *bumpParams, name string) error {
	part, err := release.ParsePart(params.Part)
	if err != nil {
		return cli.Validation("%w", err)
	}
	cfg, err := params.loadConfig()
	if err != nil {
		return err
	}
	logger := environment.logger(&params.globalParams)

	repository := git.NewRepository(params.Repo)
	toplevel, err := repository.Toplevel(ctx)
	if err != nil {
		return cli.Validation("%s is not inside a git checkout: %w", params.Repo, err)
	}
	repository = git.NewRepository(toplevel)
	templatesDir := filepath.Join(toplevel, filepath.FromSlash(cfg.Registry.TemplatesPath))
	logger.Debug("bumping template", "name", name, "part", part, "templates_dir", templatesDir)

	result, err := release.BumpTemplate(ctx, templatesDir, name, part)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("%w", err)
	case errors.Is(err, release.ErrInvalidVersion):
		return cli.Validation("%w", err)
	case err != nil:
		return categorize(err)
	}

	output := bumpResult{
		Name:            result.Name,
		PreviousVersion: result.PreviousVersion,
		Version:         result.Version,
		MetadataPath:    result.MetadataPath,
		Tag:             result.Tag,
	}

	if params.Tag {
		if err := tagRelease(ctx, repository, toplevel, result); err != nil {
			return err
		}
		output.Tagged = true
	}

	if done, err := params.EmitJSON(environment.Console.Out(), output); done {
		return err
	}

	console := environment.Console
	previous := result.PreviousVersion
	if previous == "" {
		previous = "(none)"
	}
	console.Success("%s: %s -> %s", result.Name, previous, result.Version)
	console.Info("Updated %s", result.MetadataPath)
	if output.Tagged {
		console.Info("Created tag %s", result.Tag)
		console.Info("")
		console.Heading("Next steps")
		console.Info("  git push --follow-tags")
	} else {
		console.Info("")
		console.Heading("Next steps")
		console.Info("  Commit the change, then tag it: git tag -a %s", result.Tag)
	}
	return nil
}

func tagRelease(ctx context.Context, repository *git.Repository, toplevel string, result *release.Result) error {
	existing, err := repository.Tags(ctx, result.Tag)
	if err != nil {
		return cli.Internal("%w", err)
	}
	if len(existing) > 0 {
		return cli.Conflict("tag %s already exists; %s was updated but not committed", result.Tag, result.MetadataPath)
	}

	relative, err := filepath.Rel(toplevel, result.MetadataPath)
	if err != nil {
		return cli.Internal("%w", err)
	}
	message := fmt.Sprintf("%s: release %s", result.Name, result.Version)
	if err := repository.Commit(ctx, message, relative); err != nil {
		return cli.Internal("%w", err)
	}
	if err := repository.CreateTag(ctx, result.Tag, message); err != nil {
		return cli.Internal("%w", err)
	}
	return nil
}
