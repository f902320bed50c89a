// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/agent-templates/lib/template"
)

// SetVersion returns document with its top-level version value
// replaced. Keys are matched the way template.ParseMetadata reads them:
// unindented, with spaces around the key allowed ("version : 1.0.0").
// When several lines match, the last one is rewritten, since that is the
// one the parser keeps. A trailing comment on the line is kept. When the
// document has no version key, one is inserted as the first line.
func SetVersion(document []byte, version string) []byte {
	lineEnding := "\n"
	if bytes.Contains(document, []byte("\r\n")) {
		lineEnding = "\r\n"
	}

	lines := strings.Split(string(document), "\n")
	last := -1
	for index, line := range lines {
		if isVersionLine(strings.TrimPrefix(strings.TrimSuffix(line, "\r"), "\ufeff")) {
			last = index
		}
	}

	if last < 0 {
		if len(document) == 0 {
			return []byte("version: " + version + lineEnding)
		}
		return append([]byte("version: "+version+lineEnding), document...)
	}

	line := lines[last]
	carriageReturn := ""
	if trimmed, ok := strings.CutSuffix(line, "\r"); ok {
		line, carriageReturn = trimmed, "\r"
	}
	bomless := strings.TrimPrefix(line, "\ufeff")
	_, value, _ := strings.Cut(bomless, ":")
	comment := ""
	if position := strings.Index(value, " #"); position >= 0 {
		comment = value[position:]
	}
	lines[last] = line[:len(line)-len(bomless)] + "version: " + version + comment + carriageReturn
	return []byte(strings.Join(lines, "\n"))
}

// isVersionLine reports whether line declares the top-level version key.
func isVersionLine(line string) bool {
	if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
		return false
	}
	key, _, ok := strings.Cut(line, ":")
	return ok && strings.TrimSpace(key) == "version"
}

// Result describes a completed bump.
type Result struct {
	Name            string
	PreviousVersion string
	Version         string

	// MetadataPath is the rewritten template.yaml.
	MetadataPath string

	// Tag is the tag name that would publish Version.
	Tag string
}

// BumpTemplate increments the version declared in
// <templatesDir>/<name>/template.yaml and writes the file back.
func BumpTemplate(ctx context.Context, templatesDir, name string, part Part) (*Result, error) {
	if name == "" {
		return nil, template.ErrEmptyName
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metadataPath := filepath.Join(templatesDir, name, template.MetadataFile)
	info, err := os.Stat(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata for template %q: %w", name, err)
	}
	document, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata for template %q: %w", name, err)
	}

	previous := template.ParseMetadata(document).Version
	next, err := Bump(previous, part)
	if err != nil {
		return nil, fmt.Errorf("bumping template %q: %w", name, err)
	}

	rewritten := SetVersion(document, next)
	if declared := template.ParseMetadata(rewritten).Version; declared != next {
		return nil, fmt.Errorf("bumping template %q: rewritten %s declares %q, not %q", name, template.MetadataFile, declared, next)
	}
	if err := os.WriteFile(metadataPath, rewritten, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing metadata for template %q: %w", name, err)
	}

	return &Result{
		Name:            name,
		PreviousVersion: previous,
		Version:         next,
		MetadataPath:    metadataPath,
		Tag:             TagName(name, next),
	}, nil
}
