// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry connects the template loader to a GitHub repository
// that hosts templates.
package registry

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/bureau-foundation/agent-templates/lib/github"
	"github.com/bureau-foundation/agent-templates/lib/template"
)

// GitHubConfig locates a template registry on GitHub.
type GitHubConfig struct {
	Owner string
	Repo  string

	// TemplatesPath is the directory holding one subdirectory per
	// template, relative to the repository root.
	TemplatesPath string
}

// GitHub serves a template.Registry from one GitHub repository. Paths
// given to it are relative to the templates directory.
type GitHub struct {
	client        *github.Client
	owner         string
	repo          string
	templatesPath string
}

var _ template.Registry = (*GitHub)(nil)

// NewGitHub returns a registry backed by client.
func NewGitHub(client *github.Client, config GitHubConfig) (*GitHub, error) {
	if client == nil {
		return nil, fmt.Errorf("registry: GitHub client is required")
	}
	if config.Owner == "" || config.Repo == "" {
		return nil, fmt.Errorf("registry: owner and repo are required (got %q/%q)", config.Owner, config.Repo)
	}
	return &GitHub{
		client:        client,
		owner:         config.Owner,
		repo:          config.Repo,
		templatesPath: strings.Trim(config.TemplatesPath, "/"),
	}, nil
}

// Source returns the repository's web URL, recorded as provenance.
func (registry *GitHub) Source() string {
	return "https://github.com/" + registry.owner + "/" + registry.repo
}

// repoPath maps a templates-relative path to a repository path.
func (registry *GitHub) repoPath(relative string) string {
	return path.Join(registry.templatesPath, relative)
}

// ListDir lists a directory under the templates root. A directory or
// revision GitHub does not know is reported as template.ErrNotFound, and
// so is a path that names a file.
func (registry *GitHub) ListDir(ctx context.Context, revision template.Revision, relative string) ([]template.Entry, error) {
	requested := registry.repoPath(relative)
	contents, err := registry.client.GetContents(ctx, registry.owner, registry.repo, requested, revision.String())
	if err != nil {
		return nil, notFound(err)
	}
	// The contents API answers a file path with the file itself.
	if len(contents) == 1 && contents[0].Path == requested {
		return nil, fmt.Errorf("%w: %s at %s is a %s, not a directory", template.ErrNotFound, relative, revision, contents[0].Type)
	}

	prefix := registry.templatesPath
	entries := make([]template.Entry, 0, len(contents))
	for _, content := range contents {
		entryPath := content.Path
		if prefix != "" {
			entryPath = strings.TrimPrefix(strings.TrimPrefix(entryPath, prefix), "/")
		}
		entries = append(entries, template.Entry{
			Name:        content.Name,
			Path:        entryPath,
			Type:        entryType(content.Type),
			DownloadURL: content.DownloadURL,
		})
	}
	return entries, nil
}

// ListTags lists tag names starting with prefix.
func (registry *GitHub) ListTags(ctx context.Context, prefix string) ([]string, error) {
	iterator := registry.client.ListMatchingRefs(ctx, registry.owner, registry.repo, "tags/"+prefix)
	tags, err := github.TagNames(ctx, iterator)
	if err != nil {
		return nil, notFound(err)
	}
	return tags, nil
}

// ResolveCommit returns the commit SHA revision points to.
func (registry *GitHub) ResolveCommit(ctx context.Context, revision template.Revision) (string, error) {
	commit, err := registry.client.GetCommit(ctx, registry.owner, registry.repo, revision.String())
	if err != nil {
		return "", notFound(err)
	}
	return commit.SHA, nil
}

// ReadFile reads a file under the templates root through the raw
// content host, which does not consume API rate limit.
func (registry *GitHub) ReadFile(ctx context.Context, revision template.Revision, relative string) ([]byte, error) {
	data, err := registry.client.GetRawFile(ctx, registry.owner, registry.repo, revision.String(), registry.repoPath(relative))
	if err != nil {
		return nil, notFound(err)
	}
	return data, nil
}

// Download fetches a download URL from a ListDir entry.
func (registry *GitHub) Download(ctx context.Context, url string) ([]byte, error) {
	data, err := registry.client.Download(ctx, url)
	if err != nil {
		return nil, notFound(err)
	}
	return data, nil
}

func entryType(contentType string) string {
	switch contentType {
	case github.ContentTypeFile:
		return template.EntryTypeFile
	case github.ContentTypeDir:
		return template.EntryTypeDir
	default:
		return contentType
	}
}

// notFound adds template.ErrNotFound to the chain of GitHub 404s so the
// loader can tell a missing template from a transport failure.
func notFound(err error) error {
	if github.IsNotFound(err) {
		return fmt.Errorf("%w: %w", template.ErrNotFound, err)
	}
	return err
}
