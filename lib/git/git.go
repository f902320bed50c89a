// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package git provides typed access to the git CLI for the registry
// maintenance commands: finding the repository root, staging and
// committing a metadata change, and creating per-template release tags.
// All commands target a specific repository directory via the -C flag,
// which is automatically injected by all Repository methods.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Repository represents a git working tree at a specific directory. All
// operations target this directory via "git -C <dir>". There is no
// default directory; callers must always specify which repository they
// mean.
type Repository struct {
	dir string
}

// NewRepository returns a Repository targeting the given directory.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Run executes a git command targeting this repository and returns
// stdout. Stderr is captured separately and included in error messages
// on failure.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := r.Command(ctx, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), r.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Command returns an *exec.Cmd for a git command without running it.
// The -C flag targeting this repository is automatically prepended.
func (r *Repository) Command(ctx context.Context, args ...string) *exec.Cmd {
	fullArgs := append([]string{"-C", r.dir}, args...)
	return exec.CommandContext(ctx, "git", fullArgs...)
}

// Toplevel returns the absolute path of the working tree root.
func (r *Repository) Toplevel(ctx context.Context) (string, error) {
	output, err := r.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// Tags lists tag names matching a glob pattern, e.g. "review/v*".
func (r *Repository) Tags(ctx context.Context, pattern string) ([]string, error) {
	output, err := r.Run(ctx, "tag", "--list", pattern)
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// Commit stages paths and records a commit containing only them.
func (r *Repository) Commit(ctx context.Context, message string, paths ...string) error {
	if len(paths) == 0 {
		return fmt.Errorf("git commit: no paths given")
	}
	if _, err := r.Run(ctx, append([]string{"add", "--"}, paths...)...); err != nil {
		return err
	}
	_, err := r.Run(ctx, append([]string{"commit", "-m", message, "--"}, paths...)...)
	return err
}

// CreateTag creates an annotated tag at HEAD.
func (r *Repository) CreateTag(ctx context.Context, name, message string) error {
	_, err := r.Run(ctx, "tag", "--annotate", "--message", message, name)
	return err
}

// RevParse resolves a revision to its full object name.
func (r *Repository) RevParse(ctx context.Context, revision string) (string, error) {
	output, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", revision+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}
