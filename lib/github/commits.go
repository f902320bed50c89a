// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
)

// GetCommit returns the commit a ref (branch, tag, or SHA) points to.
// Annotated tags are peeled to their commit by GitHub.
func (client *Client) GetCommit(ctx context.Context, owner, repo, ref string) (*RepoCommit, error) {
	var commit RepoCommit
	path := repoPath(owner, repo) + "/commits/" + escapeSlashPath(ref)
	if err := client.get(ctx, path, &commit); err != nil {
		return nil, fmt.Errorf("getting commit for %q in %s/%s: %w", ref, owner, repo, err)
	}
	return &commit, nil
}
