// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"
)

// GetContents lists the repository contents at path for the given ref
// (branch, tag, or commit SHA). When path names a directory the entries
// are returned in GitHub's order; when it names a file the result is a
// one-element slice describing that file. An empty ref selects the
// repository's default branch.
func (client *Client) GetContents(ctx context.Context, owner, repo, path, ref string) ([]ContentEntry, error) {
	requestPath := repoPath(owner, repo) + "/contents/" + escapeSlashPath(path)
	if ref != "" {
		requestPath += "?ref=" + neturl.QueryEscape(ref)
	}

	body, _, err := client.do(ctx, http.MethodGet, requestPath)
	if err != nil {
		return nil, fmt.Errorf("listing %s at %q in %s/%s: %w", path, ref, owner, repo, err)
	}

	// Directories come back as a JSON array, files as a single object.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var entry ContentEntry
		if err := json.Unmarshal(trimmed, &entry); err != nil {
			return nil, fmt.Errorf("github: decoding contents of %s: %w", path, err)
		}
		return []ContentEntry{entry}, nil
	}

	var entries []ContentEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("github: decoding contents of %s: %w", path, err)
	}
	return entries, nil
}

// GetRawFile fetches the raw bytes of path at ref from the raw content
// host. This does not count against the REST API rate limit.
func (client *Client) GetRawFile(ctx context.Context, owner, repo, ref, path string) ([]byte, error) {
	url := client.rawBaseURL + "/" + neturl.PathEscape(owner) + "/" + neturl.PathEscape(repo) +
		"/" + escapeSlashPath(ref) + "/" + escapeSlashPath(path)
	data, err := client.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("reading %s at %q in %s/%s: %w", path, ref, owner, repo, err)
	}
	return data, nil
}
