// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/lib/preview"
	"github.com/bureau-foundation/agent-templates/lib/template"
)

// instructionsFile is the file a template's agent instructions live in.
const instructionsFile = "AGENTS.md"

type showParams struct {
	globalParams
	cli.JSONOutput
	Raw bool   `json:"raw" flag:"raw" desc:"print AGENTS.md unrendered"`
	Ref string `json:"ref" flag:"ref" desc:"branch to use for untagged templates (default: registry default branch)"`
}

// showResult is the --json form of show.
type showResult struct {
	Name         string   `json:"name"`
	Revision     string   `json:"revision"`
	Commit       string   `json:"commit,omitempty"`
	Version      string   `json:"version,omitempty"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies"`
	Instructions string   `json:"instructions,omitempty"`
}

func showCommand(environment *Environment) *cli.Command {
	var params showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show a template's metadata and instructions",
		Description: `Resolve a template the way load would and print the chosen revision,
its declared version and dependencies, and its AGENTS.md rendered for the
terminal. Nothing is written to disk.`,
		Usage: "agents show name[@version] [flags]",
		Examples: []cli.Example{
			{Description: "Preview the latest release", Command: "agents show code-review"},
			{Description: "Print the raw instructions of a pinned version", Command: "agents show code-review@v1.2.0 --raw"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("show takes exactly one template, got %d arguments", len(args))
			}
			return runShow(ctx, environment, &params, args[0])
		},
	}
}

func runShow(ctx context.Context, environment *Environment, params *showParams, spec string) error {
	ref, err := template.ParseRef(spec)
	if err != nil {
		return cli.Validation("%w", err)
	}
	if err := template.ValidateName(ref.Name); err != nil {
		return cli.Validation("%w", err)
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

	branch := cfg.Registry.DefaultBranch
	if params.Ref != "" {
		branch = params.Ref
	}
	revision, err := template.ResolveRevision(ctx, templates, ref.Name, ref.Version, branch)
	if err != nil {
		logger.Debug("tag lookup failed; using default branch", "template", ref.Name, "error", err)
	}

	// The listing is the existence check, as it is for load.
	entries, err := templates.ListDir(ctx, revision, ref.Name)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			return cli.NotFound("%w", &template.NotFoundError{Name: ref.Name, Revision: revision, Err: err})
		}
		return categorize(err)
	}
	if len(entries) == 0 {
		return cli.NotFound("%w", &template.NotFoundError{Name: ref.Name, Revision: revision})
	}

	metadata, err := template.ReadMetadata(ctx, templates, revision, ref.Name)
	if err != nil {
		logger.Debug("template metadata unavailable", "template", ref.Name, "error", err)
	}
	commit, err := templates.ResolveCommit(ctx, revision)
	if err != nil {
		logger.Debug("commit lookup failed", "template", ref.Name, "error", err)
	}
	if len(commit) > template.FingerprintLength {
		commit = commit[:template.FingerprintLength]
	}

	var instructions []byte
	if hasFile(entries, instructionsFile) {
		instructions, err = templates.ReadFile(ctx, revision, path.Join(ref.Name, instructionsFile))
		if err != nil {
			return categorize(fmt.Errorf("reading %s of %q: %w", instructionsFile, ref.Name, err))
		}
	}

	result := showResult{
		Name:         ref.Name,
		Revision:     revision.String(),
		Commit:       commit,
		Version:      metadata.Version,
		Description:  metadata.Description,
		Dependencies: metadata.Dependencies,
		Instructions: string(instructions),
	}
	if done, err := params.EmitJSON(environment.Console.Out(), normalizeShow(result)); done {
		return err
	}

	console := environment.Console
	console.Heading("%s", ref.Name)
	if metadata.Description != "" {
		console.Info("%s", metadata.Description)
	}
	console.Info("")
	revisionLine := revision.String()
	if commit != "" {
		revisionLine += " (" + commit + ")"
	}
	console.Info("Revision:     %s", revisionLine)
	if metadata.Version != "" {
		console.Info("Version:      %s", metadata.Version)
	}
	if len(metadata.Dependencies) > 0 {
		console.Info("Dependencies: %s", strings.Join(metadata.Dependencies, ", "))
	} else {
		console.Info("Dependencies: none")
	}

	if instructions == nil {
		console.Notice("\n%s has no %s", ref.Name, instructionsFile)
		return nil
	}
	console.Info("")
	if params.Raw {
		_, err := environment.Console.Out().Write(instructions)
		return err
	}
	rendered := preview.Render(instructions, preview.Options{
		Width:   min(console.Width(), 100),
		Profile: console.Profile(),
	})
	_, err = fmt.Fprintln(environment.Console.Out(), rendered)
	return err
}

func hasFile(entries []template.Entry, name string) bool {
	for _, entry := range entries {
		if entry.Type == template.EntryTypeFile && entry.Name == name {
			return true
		}
	}
	return false
}

func normalizeShow(result showResult) showResult {
	if result.Dependencies == nil {
		result.Dependencies = []string{}
	}
	return result
}
