// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/lib/manifest"
	"github.com/bureau-foundation/agent-templates/lib/template"
)

// consoleReporter prints load progress for a person watching the
// terminal. Skips are warnings: the dependency was already loaded
// earlier in this session, and that copy stays whatever version the
// later request names.
type consoleReporter struct {
	console *cli.Console
}

var _ template.Reporter = consoleReporter{}

func (reporter consoleReporter) Resolving(ref template.Ref, revision template.Revision) {
	reporter.console.Info("Resolving %s at %s", reporter.console.Accent(ref.Name), revision)
}

func (reporter consoleReporter) Fetched(name string, files []template.FetchedFile) {
	noun := "files"
	if len(files) == 1 {
		noun = "file"
	}
	reporter.console.Info("  fetched %d %s for %s", len(files), noun, name)
}

func (reporter consoleReporter) Skipped(ref template.Ref, parent string) {
	reporter.console.Warn("%s (required by %s) is already loaded; skipping", ref, parent)
}

func (reporter consoleReporter) Loaded(entry manifest.Entry) {
	version := entry.Version
	if version == "" {
		version = "unversioned"
	}
	reporter.console.Notice("  loaded %s (%s)", entry.Name, version)
}
