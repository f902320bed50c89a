// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import "context"

// Revision is a source-control reference (tag or branch name) chosen
// for one template. It parameterizes every fetch for that template
// within a session and is never persisted except as provenance.
type Revision string

func (revision Revision) String() string { return string(revision) }

// Entry types reported by Registry.ListDir.
const (
	EntryTypeFile = "file"
	EntryTypeDir  = "dir"
)

// Entry is one item of a registry directory listing.
type Entry struct {
	// Name is the base name of the entry.
	Name string

	// Path is the entry's path relative to the templates root.
	Path string

	// Type is EntryTypeFile, EntryTypeDir, or a registry-specific
	// value for anything else (symlinks, submodules). Only files are
	// template payload.
	Type string

	// DownloadURL fetches the file's content. Empty for non-files.
	DownloadURL string
}

// Registry is the read-only view of a template registry. Paths are
// relative to the registry's templates root: "" lists every template,
// "review" lists the review template's files, and
// "review/template.yaml" names its metadata document.
//
// Implementations wrap ErrNotFound when a path or revision does not
// exist.
type Registry interface {
	// ListDir lists the entries directly under path at revision.
	ListDir(ctx context.Context, revision Revision, path string) ([]Entry, error)

	// ListTags returns the names of tags starting with prefix, without
	// the "refs/tags/" qualifier, in no particular order.
	ListTags(ctx context.Context, prefix string) ([]string, error)

	// ResolveCommit returns the full commit identifier revision points to.
	ResolveCommit(ctx context.Context, revision Revision) (string, error)

	// ReadFile returns the raw content of path at revision.
	ReadFile(ctx context.Context, revision Revision, path string) ([]byte, error)

	// Download returns the content behind an Entry's DownloadURL.
	Download(ctx context.Context, url string) ([]byte, error)
}
