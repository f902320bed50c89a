// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/lib/manifest"
)

type statusParams struct {
	globalParams
	cli.JSONOutput
	Dir string `json:"dir" flag:"dir,d" desc:"target directory (default: target_dir from configuration)"`
}

type statusEntry struct {
	Name         string `json:"name"`
	Version      string `json:"version,omitempty"`
	Commit       string `json:"commit,omitempty"`
	Source       string `json:"source,omitempty"`
	DependencyOf string `json:"dependency_of,omitempty"`
}

type statusResult struct {
	Manifest  string        `json:"manifest"`
	Primary   string        `json:"primary"`
	LoadedAt  time.Time     `json:"loaded_at"`
	Templates []statusEntry `json:"templates"`
}

func statusCommand(environment *Environment) *cli.Command {
	var params statusParams
	return &cli.Command{
		Name:    "status",
		Summary: "Show which templates are loaded in the project",
		Description: `Read the manifest in the target directory and print the templates
recorded there, with the version and commit each was loaded from. No
network access is needed.`,
		Usage: "agents status [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("status", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("status takes no arguments, got %q", args)
			}
			return runStatus(environment, &params)
		},
	}
}

func runStatus(environment *Environment, params *statusParams) error {
	dir := params.Dir
	if dir == "" {
		cfg, err := params.loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.TargetDir
	}

	manifestPath := filepath.Join(dir, manifest.FileName)
	loaded, err := manifest.Read(manifestPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cli.NotFound("no templates loaded in %s (missing %s); run 'agents load' first", dir, manifest.FileName)
	}
	if err != nil {
		return cli.Internal("%w", err)
	}

	result := statusResult{
		Manifest: manifestPath,
		Primary:  loaded.Primary,
		LoadedAt: loaded.LoadedAt,
	}
	for _, entry := range loaded.Templates {
		result.Templates = append(result.Templates, statusEntry{
			Name:         entry.Name,
			Version:      entry.Version,
			Commit:       entry.Commit,
			Source:       entry.Source,
			DependencyOf: entry.DependencyOf,
		})
	}
	if result.Templates == nil {
		result.Templates = []statusEntry{}
	}
	if done, err := params.EmitJSON(environment.Console.Out(), result); done {
		return err
	}

	console := environment.Console
	console.Heading("%s", loaded.Primary)
	console.Notice("loaded %s from %s", loaded.LoadedAt.Format(time.RFC3339), manifestPath)
	console.Info("")

	writer := tabwriter.NewWriter(console.Out(), 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "TEMPLATE\tVERSION\tCOMMIT\tREQUIRED BY")
	for _, entry := range result.Templates {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			entry.Name, orDash(entry.Version), orDash(entry.Commit), orDash(entry.DependencyOf))
	}
	return writer.Flush()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
