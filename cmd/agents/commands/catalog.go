// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/bureau-foundation/agent-templates/lib/template"
	"github.com/bureau-foundation/agent-templates/lib/tui"
)

// catalogEntry describes one template available in the registry.
type catalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// LatestTag is the highest "<name>/v<semver>" tag, empty when the
	// template has never been released.
	LatestTag string `json:"latest_tag,omitempty"`
}

type catalog []catalogEntry

func (entries catalog) candidates() []tui.Candidate {
	candidates := make([]tui.Candidate, len(entries))
	for index, entry := range entries {
		candidates[index] = tui.Candidate{
			Name:        entry.Name,
			Description: entry.Description,
			Version:     template.TagVersion(entry.Name, entry.LatestTag),
		}
	}
	return candidates
}

// listCatalog lists the templates present at revision with their
// descriptions and latest release tags. Description and tag lookups are
// best-effort, like during a load; only the directory listing is
// required.
func listCatalog(ctx context.Context, registry template.Registry, revision template.Revision, logger *slog.Logger) (catalog, error) {
	entries, err := registry.ListDir(ctx, revision, "")
	if err != nil {
		return nil, fmt.Errorf("listing templates at %s: %w", revision, err)
	}

	var result catalog
	for _, entry := range entries {
		if entry.Type != template.EntryTypeDir {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := catalogEntry{Name: entry.Name}
		metadata, err := template.ReadMetadata(ctx, registry, revision, entry.Name)
		if err != nil {
			logger.Debug("template metadata unavailable", "template", entry.Name, "error", err)
		}
		item.Description = metadata.Description

		tags, err := registry.ListTags(ctx, template.TagPrefix(entry.Name))
		if err != nil {
			logger.Debug("listing release tags failed", "template", entry.Name, "error", err)
		}
		item.LatestTag = template.LatestTag(entry.Name, tags)

		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
