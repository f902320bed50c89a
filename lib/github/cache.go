// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"net/http"
	"sync"
)

// maxCachedResponses bounds the conditional-request cache. A load
// touches a handful of URLs per template, so the bound only matters for
// long-lived clients.
const maxCachedResponses = 512

// cachedResponse is a successful GET kept for revalidation.
type cachedResponse struct {
	etag         string
	lastModified string
	header       http.Header
	body         []byte
}

// responseCache revalidates repeated GETs with If-None-Match or
// If-Modified-Since. A 304 answer is served from the cache and, on the
// API host, does not count against the rate limit. Entries are evicted
// oldest first once the cache is full.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cachedResponse
	order   []string
}

func newResponseCache() *responseCache {
	return &responseCache{entries: make(map[string]cachedResponse)}
}

// prepare adds conditional headers for url to request.
func (cache *responseCache) prepare(url string, request *http.Request) {
	cache.mu.Lock()
	entry, ok := cache.entries[url]
	cache.mu.Unlock()
	if !ok {
		return
	}
	if entry.etag != "" {
		request.Header.Set("If-None-Match", entry.etag)
	} else if entry.lastModified != "" {
		request.Header.Set("If-Modified-Since", entry.lastModified)
	}
}

// lookup returns the stored body and headers for url.
func (cache *responseCache) lookup(url string) ([]byte, http.Header, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	entry, ok := cache.entries[url]
	if !ok {
		return nil, nil, false
	}
	return entry.body, entry.header, true
}

// store remembers a 200 response that carries a validator. Responses
// without one cannot be revalidated and are not kept.
func (cache *responseCache) store(url string, header http.Header, body []byte) {
	entry := cachedResponse{
		etag:         header.Get("ETag"),
		lastModified: header.Get("Last-Modified"),
		header:       header.Clone(),
		body:         body,
	}
	if entry.etag == "" && entry.lastModified == "" {
		return
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if _, exists := cache.entries[url]; !exists {
		if len(cache.order) >= maxCachedResponses {
			delete(cache.entries, cache.order[0])
			cache.order = cache.order[1:]
		}
		cache.order = append(cache.order, url)
	}
	cache.entries[url] = entry
}

func (cache *responseCache) len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return len(cache.entries)
}
