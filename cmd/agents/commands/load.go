// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/lib/template"
	"github.com/bureau-foundation/agent-templates/lib/tui"
)

type loadParams struct {
	globalParams
	Dir string `json:"dir" flag:"dir,d" desc:"target directory (default: target_dir from configuration)"`
	Ref string `json:"ref" flag:"ref" desc:"branch to load untagged templates from (default: registry default branch)"`
}

func loadCommand(environment *Environment) *cli.Command {
	var params loadParams
	return &cli.Command{
		Name:    "load",
		Summary: "Load a template and its dependencies into the project",
		Description: `Load a template, and every template it depends on, into the target
directory. Each template lands in <dir>/<name>/ and provenance is recorded
in <dir>/.loaded-templates.yaml.

Without a version the highest "<name>/v<semver>" tag is used, falling back
to the default branch for templates that were never tagged. Dependencies
are resolved depth-first; a template requested twice is loaded once, and a
dependency cycle aborts the load.

Without a template argument an interactive picker opens, which requires a
terminal.`,
		Usage: "agents load [name[@version]] [flags]",
		Examples: []cli.Example{
			{Description: "Load the latest release of a template", Command: "agents load code-review"},
			{Description: "Load a pinned version into a custom directory", Command: "agents load code-review@v1.2.0 --dir .claude/agents"},
			{Description: "Pick a template interactively", Command: "agents load"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("load", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			return runLoad(ctx, environment, &params, args)
		},
	}
}

func runLoad(ctx context.Context, environment *Environment, params *loadParams, args []string) error {
	if len(args) > 1 {
		return cli.Validation("load takes at most one template, got %d arguments", len(args))
	}

	cfg, err := params.loadConfig()
	if err != nil {
		return err
	}
	logger := environment.logger(&params.globalParams)
	templates, err := environment.openRegistry(cfg, logger)
	if err != nil {
		return err
	}

	defaultBranch := cfg.Registry.DefaultBranch
	if params.Ref != "" {
		defaultBranch = params.Ref
	}

	var spec string
	if len(args) == 1 {
		spec = args[0]
	} else {
		if environment.Interactive == nil || !environment.Interactive() {
			return cli.Validation("no template given and not running in a terminal; pass a template name (e.g. agents load code-review)")
		}
		catalog, err := listCatalog(ctx, templates, template.Revision(defaultBranch), logger)
		if err != nil {
			return categorize(err)
		}
		spec, err = environment.Pick(ctx, "Load template", catalog.candidates())
		if errors.Is(err, tui.ErrCancelled) {
			return &cli.ExitError{Code: cli.ExitFailure}
		}
		if err != nil {
			return err
		}
	}

	ref, err := template.ParseRef(spec)
	if err != nil {
		return cli.Validation("%w", err)
	}

	destinationDir := params.Dir
	if destinationDir == "" {
		destinationDir = cfg.TargetDir
	}

	loader, err := template.NewLoader(template.LoaderConfig{
		Registry:      templates,
		DefaultBranch: defaultBranch,
		Source:        templates.Source(),
		Clock:         environment.Clock,
		Reporter:      consoleReporter{console: environment.Console},
		Logger:        logger,
	})
	if err != nil {
		return cli.Internal("%w", err)
	}

	result, err := loader.Load(ctx, ref, destinationDir)
	if err != nil {
		if result != nil && len(result.Loaded) > 0 {
			environment.Console.Warn("load aborted after %d template(s); files already written under %s were kept",
				len(result.Loaded), destinationDir)
		}
		return categorize(err)
	}

	console := environment.Console
	console.Success("Loaded %s (%d templates, %d skipped)", result.Primary, len(result.Loaded), len(result.Skipped))
	console.Info("Manifest: %s", result.ManifestPath)
	console.Info("")
	console.Heading("Next steps")
	console.Info("  Point your agent at %s", filepath.Join(destinationDir, result.Primary))
	console.Info("  Run 'agents status --dir %s' to review what was loaded", destinationDir)
	return nil
}
