// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package github provides a typed Go client for the parts of the GitHub
// REST API that a template registry reads: repository contents, matching
// git references, commits, and raw file downloads.
//
// Requests are anonymous unless a token is configured. The client
// tracks rate limits (X-RateLimit-* headers; an exhausted quota fails
// requests without sending them), pagination (RFC 5988 Link headers), conditional requests
// (ETags), and structured error mapping.
//
// All requests are made over HTTPS. The client refuses non-HTTPS base
// URLs, and credentials are only sent to the configured API and raw
// content hosts.
package github
