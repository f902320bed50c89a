// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"strings"
)

// ListMatchingRefs returns an iterator over references whose name
// starts with refPrefix, given without the leading "refs/" (for example
// "tags/review/v"). GitHub returns an empty list, not a 404, when
// nothing matches.
func (client *Client) ListMatchingRefs(ctx context.Context, owner, repo, refPrefix string) *PageIterator[GitRef] {
	path := repoPath(owner, repo) + "/git/matching-refs/" + escapeSlashPath(strings.TrimPrefix(refPrefix, "refs/"))
	if strings.HasSuffix(refPrefix, "/") {
		path += "/"
	}
	return list[GitRef](client, path+"?per_page=100")
}

// TagNames collects every page of a refs iterator and returns the tag
// names with the "refs/tags/" prefix removed. Non-tag refs are skipped.
func TagNames(ctx context.Context, iterator *PageIterator[GitRef]) ([]string, error) {
	refs, err := iterator.All(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		name, ok := strings.CutPrefix(ref.Ref, "refs/tags/")
		if !ok {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

