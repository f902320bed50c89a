// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest records which templates a load session materialized
// into a target directory, and where each came from.
//
// The manifest is written incrementally while the session runs: the
// primary template's record creates the file and every dependency
// record is appended after it. A session that aborts part way leaves a
// manifest describing exactly the templates that were written.
//
//	primary: review
//	loaded_at: "2026-03-01T12:00:00Z"
//	templates:
//	  - name: review
//	    version: 1.2.0
//	    commit: 0123456789ab
//	    source: https://github.com/acme/agent-templates
//	  - name: style
//	    version: ""
//	    commit: ba9876543210
//	    source: https://github.com/acme/agent-templates
//	    dependency_of: review
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/agent-templates/lib/clock"
)

// FileName is the manifest's name inside the target directory.
const FileName = ".loaded-templates.yaml"

// Entry is the provenance record of one loaded template.
type Entry struct {
	Name string `yaml:"name"`

	// Version is the version the template declares in its metadata,
	// possibly empty. It is not the tag the template was loaded from.
	Version string `yaml:"version"`

	// Commit is the short commit fingerprint of the loaded revision,
	// empty if it could not be resolved.
	Commit string `yaml:"commit"`

	// Source identifies the registry, e.g. its repository URL.
	Source string `yaml:"source"`

	// DependencyOf names the template whose dependency list pulled this
	// one in. Empty for the primary template.
	DependencyOf string `yaml:"dependency_of,omitempty"`
}

// Manifest is a parsed manifest file.
type Manifest struct {
	Primary   string
	LoadedAt  time.Time
	Templates []Entry
}

// Lookup returns the entry for name.
func (manifest *Manifest) Lookup(name string) (Entry, bool) {
	for _, entry := range manifest.Templates {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Writer appends records to one manifest file. It is not safe for
// concurrent use; a load session records sequentially.
type Writer struct {
	path  string
	clock clock.Clock
}

// NewWriter returns a Writer for the manifest at path. The clock
// supplies the loaded_at timestamp.
func NewWriter(path string, clock clock.Clock) *Writer {
	return &Writer{path: path, clock: clock}
}

// Path returns the manifest file path.
func (writer *Writer) Path() string {
	return writer.path
}

// header is the manifest preamble. Field order is the output order.
type header struct {
	Primary  string `yaml:"primary"`
	LoadedAt string `yaml:"loaded_at"`
}

// RecordPrimary creates or truncates the manifest and writes the
// header followed by the primary template's entry. Any DependencyOf on
// entry is ignored.
func (writer *Writer) RecordPrimary(entry Entry) error {
	entry.DependencyOf = ""

	var buffer bytes.Buffer
	preamble, err := yaml.Marshal(header{
		Primary:  entry.Name,
		LoadedAt: writer.clock.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encoding manifest header: %w", err)
	}
	buffer.Write(preamble)
	buffer.WriteString("templates:\n")

	block, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	buffer.Write(block)

	if err := os.MkdirAll(filepath.Dir(writer.path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	if err := os.WriteFile(writer.path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// RecordDependency appends a dependency entry with dependency_of set to
// parent. The manifest must already exist.
func (writer *Writer) RecordDependency(entry Entry, parent string) error {
	entry.DependencyOf = parent

	block, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(writer.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("recording dependency %q before a primary template: %w", entry.Name, err)
		}
		return fmt.Errorf("opening manifest: %w", err)
	}
	if _, err := file.Write(block); err != nil {
		file.Close()
		return fmt.Errorf("appending to manifest: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing manifest: %w", err)
	}
	return nil
}

// encodeEntry renders entry as a one-item YAML sequence indented to sit
// under the templates key.
func encodeEntry(entry Entry) ([]byte, error) {
	var encoded bytes.Buffer
	encoder := yaml.NewEncoder(&encoded)
	encoder.SetIndent(2)
	if err := encoder.Encode([]Entry{entry}); err != nil {
		return nil, fmt.Errorf("encoding manifest entry %q: %w", entry.Name, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding manifest entry %q: %w", entry.Name, err)
	}

	var block bytes.Buffer
	for _, line := range strings.SplitAfter(encoded.String(), "\n") {
		if line == "" {
			continue
		}
		block.WriteString("  ")
		block.WriteString(line)
	}
	return block.Bytes(), nil
}

// Read parses the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var wire struct {
		Primary   string  `yaml:"primary"`
		LoadedAt  string  `yaml:"loaded_at"`
		Templates []Entry `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	manifest := &Manifest{Primary: wire.Primary, Templates: wire.Templates}
	if wire.LoadedAt != "" {
		loadedAt, err := time.Parse(time.RFC3339, wire.LoadedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing manifest %s: loaded_at: %w", path, err)
		}
		manifest.LoadedAt = loadedAt
	}
	return manifest, nil
}
