// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// TagPrefix returns the prefix shared by every version tag of a
// template: "<name>/v".
func TagPrefix(name string) string {
	return name + "/v"
}

// ResolveRevision chooses the revision to load a template from.
//
// An explicit version yields the tag "<name>/<version>" without
// consulting the registry; a missing tag surfaces later when the files
// are fetched. Otherwise the highest "<name>/v<semver>" tag by semver
// precedence is chosen, and when there is none the default branch is
// used.
//
// The returned revision is always usable. A non-nil error reports a
// failed tag listing that caused the fall back to the default branch;
// callers treat it as diagnostic, not fatal.
func ResolveRevision(ctx context.Context, registry Registry, name, version, defaultBranch string) (Revision, error) {
	if version != "" {
		return Revision(name + "/" + version), nil
	}

	tags, err := registry.ListTags(ctx, TagPrefix(name))
	if err != nil {
		return Revision(defaultBranch), fmt.Errorf("listing tags for %q: %w", name, err)
	}

	if latest := LatestTag(name, tags); latest != "" {
		return Revision(latest), nil
	}
	return Revision(defaultBranch), nil
}

// LatestTag returns the tag in tags with the highest semantic version
// for the named template, or "" if none of them is a valid
// "<name>/v<semver>" tag. Tags with equal precedence (differing only in
// build metadata) are ordered by their full string so the choice does
// not depend on listing order.
func LatestTag(name string, tags []string) string {
	prefix := name + "/"
	best, bestVersion := "", ""
	for _, tag := range tags {
		version, ok := strings.CutPrefix(tag, prefix)
		if !ok || !semver.IsValid(version) {
			continue
		}
		if best == "" {
			best, bestVersion = tag, version
			continue
		}
		switch comparison := semver.Compare(version, bestVersion); {
		case comparison > 0, comparison == 0 && tag > best:
			best, bestVersion = tag, version
		}
	}
	return best
}

// TagVersion returns the version part of a template tag, e.g.
// "v1.2.0" for "review/v1.2.0", or "" if tag does not belong to name.
func TagVersion(name string, tag string) string {
	version, ok := strings.CutPrefix(tag, name+"/")
	if !ok {
		return ""
	}
	return version
}
