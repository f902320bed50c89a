// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bureau-foundation/agent-templates/lib/netutil"
)

// maxPages stops a listing that keeps advertising a next page. At 100
// items per page it allows 5000 refs for one template.
const maxPages = 50

// PageIterator walks a paginated GitHub listing by following the Link
// header. Pages go through the client's request and cache path, so a
// re-listed page that has not changed costs no rate limit.
//
// The iterator is not safe for concurrent use.
type PageIterator[T any] struct {
	client  *Client
	nextURL string
	fetched int
}

// Next returns the items of the next page, or nil, nil once the
// listing is exhausted.
func (iterator *PageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if iterator.nextURL == "" {
		return nil, nil
	}
	if iterator.fetched >= maxPages {
		return nil, fmt.Errorf("github: listing exceeds %d pages at %s", maxPages, iterator.nextURL)
	}

	url := iterator.nextURL
	body, header, err := iterator.client.fetch(ctx, http.MethodGet, url, netutil.MaxResponseSize)
	if err != nil {
		return nil, err
	}
	iterator.fetched++

	items := []T{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("github: decoding page %d of %s: %w", iterator.fetched, url, err)
	}
	iterator.nextURL = linkTarget(header.Get("Link"), "next")
	return items, nil
}

// All fetches every remaining page.
func (iterator *PageIterator[T]) All(ctx context.Context) ([]T, error) {
	var all []T
	for {
		items, err := iterator.Next(ctx)
		if err != nil {
			return all, err
		}
		if items == nil {
			return all, nil
		}
		all = append(all, items...)
	}
}

// linkTarget returns the URL of the link with the given relation in an
// RFC 8288 Link header, or "" if there is none:
//
//	<https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
func linkTarget(header, relation string) string {
	for link := range strings.SplitSeq(header, ",") {
		target, params, ok := strings.Cut(strings.TrimSpace(link), ";")
		if !ok {
			continue
		}
		target = strings.TrimSpace(target)
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for param := range strings.SplitSeq(params, ";") {
			name, value, _ := strings.Cut(strings.TrimSpace(param), "=")
			if strings.TrimSpace(name) != "rel" {
				continue
			}
			for rel := range strings.FieldsSeq(strings.Trim(strings.TrimSpace(value), `"`)) {
				if rel == relation {
					return target[1 : len(target)-1]
				}
			}
		}
	}
	return ""
}
