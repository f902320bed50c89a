// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/bureau-foundation/agent-templates/lib/clock"
	"github.com/bureau-foundation/agent-templates/lib/manifest"
)

// FingerprintLength is the number of commit identifier characters
// recorded in the manifest.
const FingerprintLength = 12

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Registry serves template listings, tags, commits and content.
	Registry Registry

	// DefaultBranch is loaded from when a template has no version tags.
	DefaultBranch string

	// Source is recorded as every manifest entry's source, typically the
	// registry's repository URL.
	Source string

	// Clock stamps the manifest. Defaults to clock.Real().
	Clock clock.Clock

	// Reporter receives progress events. Defaults to NopReporter.
	Reporter Reporter

	// Logger receives diagnostics for best-effort lookups that
	// degraded. Defaults to slog.Default().
	Logger *slog.Logger
}

// Loader materializes a template and its transitive dependencies into a
// target directory. A Loader holds no per-load state and may be reused;
// each Load call runs an independent session.
type Loader struct {
	registry      Registry
	defaultBranch string
	source        string
	clock         clock.Clock
	reporter      Reporter
	logger        *slog.Logger
}

// NewLoader returns a Loader for config. Registry and DefaultBranch are
// required.
func NewLoader(config LoaderConfig) (*Loader, error) {
	if config.Registry == nil {
		return nil, fmt.Errorf("template loader: registry is required")
	}
	if config.DefaultBranch == "" {
		return nil, fmt.Errorf("template loader: default branch is required")
	}

	loader := &Loader{
		registry:      config.Registry,
		defaultBranch: config.DefaultBranch,
		source:        config.Source,
		clock:         config.Clock,
		reporter:      config.Reporter,
		logger:        config.Logger,
	}
	if loader.clock == nil {
		loader.clock = clock.Real()
	}
	if loader.reporter == nil {
		loader.reporter = NopReporter{}
	}
	if loader.logger == nil {
		loader.logger = slog.Default()
	}
	return loader, nil
}

// Skip records a dependency request that was satisfied by a template
// already loaded earlier in the session.
type Skip struct {
	Ref    Ref
	Parent string
}

// Result summarizes a load session. On failure it describes the partial
// state left on disk.
type Result struct {
	// Primary is the name of the requested template.
	Primary string

	// Loaded lists the entries recorded in the manifest, in manifest
	// order.
	Loaded []manifest.Entry

	// Skipped lists dependency requests for already-loaded templates.
	Skipped []Skip

	// ManifestPath is the manifest written in the target directory.
	ManifestPath string
}

// session is the mutable state of one Load call. It is threaded through
// every recursive resolve call and discarded when Load returns.
type session struct {
	destinationDir string
	manifest       *manifest.Writer
	result         *Result

	// loaded holds names fully materialized in this session. It only
	// grows.
	loaded map[string]bool

	// stack is the ancestry chain of the template being resolved,
	// primary first. A name never appears in it twice.
	stack []string
}

// Load materializes ref and its dependencies into destinationDir and
// writes the manifest there. Errors abort the whole session: files and
// manifest entries written before the failure remain, and the returned
// Result describes them.
func (loader *Loader) Load(ctx context.Context, ref Ref, destinationDir string) (*Result, error) {
	if ref.Name == "" {
		return nil, fmt.Errorf("loading template: %w", ErrEmptyName)
	}

	manifestPath := filepath.Join(destinationDir, manifest.FileName)
	current := &session{
		destinationDir: destinationDir,
		manifest:       manifest.NewWriter(manifestPath, loader.clock),
		result:         &Result{Primary: ref.Name, ManifestPath: manifestPath},
		loaded:         make(map[string]bool),
	}

	err := loader.resolve(ctx, current, ref, true, "")
	return current.result, err
}

// resolve loads one template and, depth-first, its dependencies.
func (loader *Loader) resolve(ctx context.Context, current *session, ref Ref, isPrimary bool, parent string) error {
	if current.loaded[ref.Name] {
		current.result.Skipped = append(current.result.Skipped, Skip{Ref: ref, Parent: parent})
		loader.reporter.Skipped(ref, parent)
		return nil
	}
	if slices.Contains(current.stack, ref.Name) {
		chain := append(slices.Clone(current.stack), ref.Name)
		return &CycleError{Name: ref.Name, Chain: chain}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	current.stack = append(current.stack, ref.Name)
	defer func() {
		current.stack = current.stack[:len(current.stack)-1]
	}()

	revision, err := ResolveRevision(ctx, loader.registry, ref.Name, ref.Version, loader.defaultBranch)
	if err != nil {
		loader.logger.Debug("tag lookup failed, using default branch",
			"template", ref.Name,
			"branch", loader.defaultBranch,
			"error", err,
		)
	}
	loader.reporter.Resolving(ref, revision)

	fingerprint := loader.fingerprint(ctx, ref.Name, revision)

	metadata, err := ReadMetadata(ctx, loader.registry, revision, ref.Name)
	if err != nil {
		loader.logger.Debug("metadata unavailable",
			"template", ref.Name,
			"revision", revision,
			"error", err,
		)
	}

	files, err := FetchFiles(ctx, loader.registry, revision, ref.Name, current.destinationDir)
	if err != nil {
		return err
	}
	loader.reporter.Fetched(ref.Name, files)

	entry := manifest.Entry{
		Name:    ref.Name,
		Version: metadata.Version,
		Commit:  fingerprint,
		Source:  loader.source,
	}
	if isPrimary {
		err = current.manifest.RecordPrimary(entry)
	} else {
		entry.DependencyOf = parent
		err = current.manifest.RecordDependency(entry, parent)
	}
	if err != nil {
		return fmt.Errorf("recording %q in manifest: %w", ref.Name, err)
	}
	current.result.Loaded = append(current.result.Loaded, entry)

	for _, dependency := range metadata.Dependencies {
		dependencyRef, err := ParseRef(dependency)
		if err != nil {
			return fmt.Errorf("template %q declares an invalid dependency: %w", ref.Name, err)
		}
		if err := loader.resolve(ctx, current, dependencyRef, false, ref.Name); err != nil {
			return err
		}
	}

	current.loaded[ref.Name] = true
	loader.reporter.Loaded(entry)
	return nil
}

// fingerprint returns the short commit identifier for revision, or ""
// if the registry cannot resolve it.
func (loader *Loader) fingerprint(ctx context.Context, name string, revision Revision) string {
	commit, err := loader.registry.ResolveCommit(ctx, revision)
	if err != nil {
		loader.logger.Debug("commit lookup failed",
			"template", name,
			"revision", revision,
			"error", err,
		)
		return ""
	}
	if len(commit) > FingerprintLength {
		commit = commit[:FingerprintLength]
	}
	return commit
}
