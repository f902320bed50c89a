// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// memoryRegistry is an in-memory Registry. Content is keyed by revision
// and template-relative path; every method call is counted so tests can
// assert which registry operations a code path performed.
type memoryRegistry struct {
	revisions map[Revision]map[string]string
	tags      []string
	commits   map[Revision]string

	tagError      error
	downloadError map[string]error

	calls     map[string]int
	downloads []string
}

func newMemoryRegistry() *memoryRegistry {
	return &memoryRegistry{
		revisions:     make(map[Revision]map[string]string),
		commits:       make(map[Revision]string),
		downloadError: make(map[string]error),
		calls:         make(map[string]int),
	}
}

func (registry *memoryRegistry) addFile(revision Revision, filePath, content string) {
	tree, ok := registry.revisions[revision]
	if !ok {
		tree = make(map[string]string)
		registry.revisions[revision] = tree
	}
	tree[filePath] = content
}

// addTemplate adds a template with an AGENTS.md payload file and, when
// metadata is non-empty, a template.yaml.
func (registry *memoryRegistry) addTemplate(revision Revision, name, metadata string) {
	registry.addFile(revision, name+"/AGENTS.md", "# "+name+"\n")
	if metadata != "" {
		registry.addFile(revision, name+"/"+MetadataFile, metadata)
	}
}

func (registry *memoryRegistry) totalCalls() int {
	total := 0
	for _, count := range registry.calls {
		total += count
	}
	return total
}

func (registry *memoryRegistry) ListDir(_ context.Context, revision Revision, dir string) ([]Entry, error) {
	registry.calls["ListDir"]++
	tree, ok := registry.revisions[revision]
	if !ok {
		return nil, fmt.Errorf("revision %s: %w", revision, ErrNotFound)
	}

	var entries []Entry
	seenDirs := make(map[string]bool)
	for filePath := range tree {
		parent := path.Dir(filePath)
		if parent == "." {
			parent = ""
		}
		switch {
		case parent == dir:
			entries = append(entries, Entry{
				Name:        path.Base(filePath),
				Path:        filePath,
				Type:        EntryTypeFile,
				DownloadURL: "mem:" + string(revision) + "#" + filePath,
			})
		case dir == "" && !strings.Contains(parent, "/") && !seenDirs[parent]:
			seenDirs[parent] = true
			entries = append(entries, Entry{Name: parent, Path: parent, Type: EntryTypeDir})
		case dir != "" && path.Dir(parent) == dir && !seenDirs[parent]:
			seenDirs[parent] = true
			entries = append(entries, Entry{Name: path.Base(parent), Path: parent, Type: EntryTypeDir})
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s at %s: %w", dir, revision, ErrNotFound)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (registry *memoryRegistry) ListTags(_ context.Context, prefix string) ([]string, error) {
	registry.calls["ListTags"]++
	if registry.tagError != nil {
		return nil, registry.tagError
	}
	var matching []string
	for _, tag := range registry.tags {
		if strings.HasPrefix(tag, prefix) {
			matching = append(matching, tag)
		}
	}
	return matching, nil
}

func (registry *memoryRegistry) ResolveCommit(_ context.Context, revision Revision) (string, error) {
	registry.calls["ResolveCommit"]++
	commit, ok := registry.commits[revision]
	if !ok {
		return "", fmt.Errorf("commit for %s: %w", revision, ErrNotFound)
	}
	return commit, nil
}

func (registry *memoryRegistry) ReadFile(_ context.Context, revision Revision, filePath string) ([]byte, error) {
	registry.calls["ReadFile"]++
	content, ok := registry.revisions[revision][filePath]
	if !ok {
		return nil, fmt.Errorf("%s at %s: %w", filePath, revision, ErrNotFound)
	}
	return []byte(content), nil
}

func (registry *memoryRegistry) Download(_ context.Context, url string) ([]byte, error) {
	registry.calls["Download"]++
	location, ok := strings.CutPrefix(url, "mem:")
	if !ok {
		return nil, errors.New("unsupported download URL " + url)
	}
	revision, filePath, _ := strings.Cut(location, "#")
	if err := registry.downloadError[filePath]; err != nil {
		return nil, err
	}
	content, ok := registry.revisions[Revision(revision)][filePath]
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	registry.downloads = append(registry.downloads, filePath)
	return []byte(content), nil
}
