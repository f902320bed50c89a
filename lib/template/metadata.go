// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetadataFile is the per-template metadata document.
const MetadataFile = "template.yaml"

// Metadata is what a template declares about itself. Every field is
// best-effort: missing or malformed values leave the zero value.
type Metadata struct {
	Version      string
	Description  string
	Dependencies []string
}

// ReadMetadata fetches and parses the named template's metadata at
// revision. The returned Metadata is always usable; on a fetch error it
// is empty and the error is returned for diagnostics only.
func ReadMetadata(ctx context.Context, registry Registry, revision Revision, name string) (Metadata, error) {
	data, err := registry.ReadFile(ctx, revision, path.Join(name, MetadataFile))
	if err != nil {
		return Metadata{}, fmt.Errorf("reading %s for %q at %s: %w", MetadataFile, name, revision, err)
	}
	return ParseMetadata(data), nil
}

// ParseMetadata extracts the top-level version, description and
// dependencies fields from a metadata document. It scans lines rather
// than decoding the document, so hand-written files with unrelated
// content, stray tabs, or syntax errors elsewhere still yield whatever
// fields are readable. It never fails.
//
// Dependencies may be written inline ("dependencies: []" or
// "dependencies: [a, b]") or as a block of "- item" lines. The block
// ends at the next top-level key. Item quotes are stripped.
func ParseMetadata(data []byte) Metadata {
	var metadata Metadata
	inDependencies := false

	text := strings.TrimPrefix(string(data), "\ufeff")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indented := line[0] == ' ' || line[0] == '\t'
		if inDependencies {
			if indented || strings.HasPrefix(trimmed, "-") {
				if item, ok := sequenceItem(trimmed); ok {
					metadata.Dependencies = append(metadata.Dependencies, item)
				}
				continue
			}
			inDependencies = false
		}
		if indented {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "version":
			metadata.Version = scalarValue(value)
		case "description":
			metadata.Description = scalarValue(value)
		case "dependencies":
			if value == "" || strings.HasPrefix(value, "#") {
				inDependencies = true
				continue
			}
			metadata.Dependencies = append(metadata.Dependencies, flowSequence(value)...)
		}
	}
	return metadata
}

// sequenceItem returns the value of a "- item" line.
func sequenceItem(trimmed string) (string, bool) {
	rest, ok := strings.CutPrefix(trimmed, "-")
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	item := scalarValue(strings.TrimSpace(rest))
	return item, item != ""
}

// scalarValue decodes a single YAML scalar, handling quoting and
// trailing comments. Values YAML rejects (a leading "@", unbalanced
// quotes) fall back to manual comment and quote stripping.
func scalarValue(raw string) string {
	if raw == "" {
		return ""
	}
	var decoded string
	if err := yaml.Unmarshal([]byte(raw), &decoded); err == nil {
		return strings.TrimSpace(decoded)
	}
	if index := strings.Index(raw, " #"); index >= 0 {
		raw = strings.TrimSpace(raw[:index])
	}
	return stripQuotes(raw)
}

// flowSequence decodes an inline "[a, b]" list. Anything that is not a
// bracketed list yields nothing.
func flowSequence(raw string) []string {
	var decoded []string
	if err := yaml.Unmarshal([]byte(raw), &decoded); err == nil {
		items := decoded[:0]
		for _, item := range decoded {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}

	if index := strings.Index(raw, " #"); index >= 0 {
		raw = strings.TrimSpace(raw[:index])
	}
	inner, ok := strings.CutPrefix(raw, "[")
	if !ok {
		return nil
	}
	inner, ok = strings.CutSuffix(inner, "]")
	if !ok {
		return nil
	}
	var items []string
	for _, part := range strings.Split(inner, ",") {
		if item := stripQuotes(strings.TrimSpace(part)); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func stripQuotes(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
