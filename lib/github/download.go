// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"net/http"

	"github.com/bureau-foundation/agent-templates/lib/netutil"
)

// Download performs a GET of an absolute URL, typically a download_url
// from a contents listing, and returns the body. The read is capped at
// netutil.MaxDownloadSize. Credentials are attached only when the URL is
// on the configured API or raw content host.
func (client *Client) Download(ctx context.Context, url string) ([]byte, error) {
	body, _, err := client.fetch(ctx, http.MethodGet, url, netutil.MaxDownloadSize)
	if err != nil {
		return nil, err
	}
	return body, nil
}
