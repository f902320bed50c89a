// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile lists, in gitignore syntax, files of a template directory
// that are not copied into the target.
const IgnoreFile = ".agentsignore"

// FetchedFile describes one file written by FetchFiles.
type FetchedFile struct {
	// Name is the file's base name within the template.
	Name string

	// Path is where the file was written.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// FetchFiles downloads the payload files of the named template at
// revision into "<destinationDir>/<name>/", overwriting existing files.
//
// Payload is every file directly in the template directory except the
// metadata document, the ignore file, and anything the ignore file
// excludes. Subdirectories are not descended into.
//
// A registry not-found or a listing with no payload returns a
// *NotFoundError and creates nothing. Downloads are not retried; the
// first failure aborts and files already written stay on disk.
func FetchFiles(ctx context.Context, registry Registry, revision Revision, name, destinationDir string) ([]FetchedFile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	entries, err := registry.ListDir(ctx, revision, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &NotFoundError{Name: name, Revision: revision, Err: err}
		}
		return nil, fmt.Errorf("listing files of %q at %s: %w", name, revision, err)
	}

	payload, err := selectPayload(ctx, registry, entries)
	if err != nil {
		return nil, fmt.Errorf("reading %s of %q at %s: %w", IgnoreFile, name, revision, err)
	}
	if len(payload) == 0 {
		return nil, &NotFoundError{Name: name, Revision: revision}
	}

	templateDir := filepath.Join(destinationDir, name)
	if err := os.MkdirAll(templateDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", templateDir, err)
	}

	fetched := make([]FetchedFile, 0, len(payload))
	for _, entry := range payload {
		data, err := registry.Download(ctx, entry.DownloadURL)
		if err != nil {
			return fetched, fmt.Errorf("downloading %s of %q at %s: %w", entry.Name, name, revision, err)
		}
		target := filepath.Join(templateDir, entry.Name)
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fetched, fmt.Errorf("writing %s: %w", target, err)
		}
		fetched = append(fetched, FetchedFile{Name: entry.Name, Path: target, Size: int64(len(data))})
	}
	return fetched, nil
}

// selectPayload filters a template directory listing down to the files
// to download, applying the ignore file when one is present.
func selectPayload(ctx context.Context, registry Registry, entries []Entry) ([]Entry, error) {
	var candidates []Entry
	var ignoreEntry *Entry
	for index := range entries {
		entry := entries[index]
		if entry.Type != EntryTypeFile || entry.DownloadURL == "" || !isSegment(entry.Name) {
			continue
		}
		switch entry.Name {
		case MetadataFile:
			continue
		case IgnoreFile:
			ignoreEntry = &entries[index]
			continue
		}
		candidates = append(candidates, entry)
	}

	if ignoreEntry == nil {
		return candidates, nil
	}

	data, err := registry.Download(ctx, ignoreEntry.DownloadURL)
	if err != nil {
		return nil, err
	}
	matcher := ignore.CompileIgnoreLines(strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")...)

	payload := candidates[:0]
	for _, entry := range candidates {
		if matcher.MatchesPath(entry.Name) {
			continue
		}
		payload = append(payload, entry)
	}
	return payload, nil
}

// ValidateName checks that name can be a template directory: a single
// relative path element that stays inside the templates root. It wraps
// ErrInvalidName, or ErrEmptyName for "".
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if !isSegment(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// isSegment reports whether name is a single relative path element that
// stays inside its parent directory.
func isSegment(name string) bool {
	return name != "" && name != "." && filepath.IsLocal(name) && !strings.ContainsAny(name, `/\`)
}
