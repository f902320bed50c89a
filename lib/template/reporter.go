// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import "github.com/bureau-foundation/agent-templates/lib/manifest"

// Reporter receives the user-visible events of a load session, in the
// order they happen. Implementations must not block for long; the
// session waits for each call.
type Reporter interface {
	// Resolving is called once the revision for ref is chosen.
	Resolving(ref Ref, revision Revision)

	// Fetched is called after a template's files are written.
	Fetched(name string, files []FetchedFile)

	// Skipped is called when ref names a template already loaded in
	// this session. Parent is the template that declared it.
	Skipped(ref Ref, parent string)

	// Loaded is called when a template and all its dependencies are
	// loaded.
	Loaded(entry manifest.Entry)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) Resolving(Ref, Revision) {}
func (NopReporter) Fetched(string, []FetchedFile) {}
func (NopReporter) Skipped(Ref, string) {}
func (NopReporter) Loaded(manifest.Entry) {}
