// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/bureau-foundation/agent-templates/lib/clock"
	"github.com/bureau-foundation/agent-templates/lib/netutil"
)

// githubAPIVersion is the GitHub REST API version header. Pinning the
// version ensures consistent behavior as GitHub evolves the API.
const githubAPIVersion = "2022-11-28"

// defaultBaseURL is the base URL for the public GitHub API.
const defaultBaseURL = "https://api.github.com"

// defaultRawBaseURL serves raw file content for public repositories.
const defaultRawBaseURL = "https://raw.githubusercontent.com"

// Config holds configuration for creating a GitHub API Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// "https://api.github.com". Must use HTTPS.
	BaseURL string

	// RawBaseURL is the root URL for raw file content. Defaults to
	// "https://raw.githubusercontent.com". Must use HTTPS.
	RawBaseURL string

	// Token is a personal access token or fine-grained token. Optional:
	// an empty token sends anonymous requests, which GitHub serves for
	// public repositories at a lower rate limit.
	Token string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations. Defaults to clock.Real().
	// Inject clock.Fake() in tests for deterministic behavior.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed GitHub REST API client with optional token
// authentication, rate limiting, pagination, conditional-request caching, and
// structured error handling.
type Client struct {
	baseURL    string
	rawBaseURL string
	httpClient *http.Client
	auth       authenticator
	rateLimit  *rateLimiter
	responses  *responseCache
	logger     *slog.Logger
}

// NewClient creates a GitHub API client from the given configuration.
// Returns an error if either base URL is not HTTPS.
func NewClient(config Config) (*Client, error) {
	baseURL, err := httpsBase(config.BaseURL, defaultBaseURL)
	if err != nil {
		return nil, err
	}
	rawBaseURL, err := httpsBase(config.RawBaseURL, defaultRawBaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var auth authenticator = anonymousAuth{}
	if config.Token != "" {
		auth = newTokenAuth(config.Token)
	}

	return &Client{
		baseURL:    baseURL,
		rawBaseURL: rawBaseURL,
		httpClient: httpClient,
		auth:       auth,
		rateLimit:  newRateLimiter(clk),
		responses:  newResponseCache(),
		logger:     logger,
	}, nil
}

// httpsBase applies the default and enforces the HTTPS scheme.
func httpsBase(configured, fallback string) (string, error) {
	base := configured
	if base == "" {
		base = fallback
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(base, "https://") {
		return "", fmt.Errorf("github: API client requires HTTPS (got %q)", base)
	}
	return base, nil
}

// Authenticated reports whether requests carry a token.
func (client *Client) Authenticated() bool {
	_, anonymous := client.auth.(anonymousAuth)
	return !anonymous
}

// RateLimit returns the most recently observed rate limit state.
func (client *Client) RateLimit() RateLimitStatus {
	return client.rateLimit.status()
}

// do executes a GitHub API request against a path relative to the base
// URL (e.g., "/repos/owner/repo/contents/templates"). Handles
// authentication, response caching, and error parsing.
//
// Returns the response body as raw bytes. On non-2xx responses,
// returns an *APIError.
func (client *Client) do(ctx context.Context, method, path string) ([]byte, http.Header, error) {
	return client.fetch(ctx, method, client.baseURL+path, netutil.MaxResponseSize)
}

// fetch sends exactly one request to an absolute URL, so downloads from
// the raw content host share the caching and error path of API calls.
// A rate-limited response is returned as an *APIError, not retried.
func (client *Client) fetch(ctx context.Context, method, url string, limit int64) ([]byte, http.Header, error) {
	response, err := client.doRaw(ctx, method, url)
	if err != nil {
		return nil, nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotModified {
		if cached, header, ok := client.responses.lookup(url); ok {
			client.logger.Debug("github: not modified", "url", url)
			return cached, header, nil
		}
	}

	body, err := netutil.ReadLimited(response.Body, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("github: reading response body from %s: %w", url, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiError := newAPIError(response.StatusCode, url, body)
		if IsRateLimited(apiError) {
			client.logger.Warn("github: rate limited",
				"method", method,
				"url", url,
				"retry_after", response.Header.Get("Retry-After"),
			)
		}
		return nil, nil, apiError
	}

	if method == http.MethodGet && response.StatusCode == http.StatusOK {
		client.responses.store(url, response.Header, body)
	}

	return body, response.Header, nil
}

// doRaw sends one request with authentication and conditional headers,
// refusing to send while the rate limit quota is exhausted. The caller closes the response body.
func (client *Client) doRaw(ctx context.Context, method, url string) (*http.Response, error) {
	if err := client.rateLimit.admit(); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("github: creating request: %w", err)
	}

	// Credentials only travel to the configured API and raw hosts.
	if client.trusted(url) {
		authHeader, err := client.auth.AuthorizationHeader(ctx)
		if err != nil {
			return nil, fmt.Errorf("github: authentication: %w", err)
		}
		if authHeader != "" {
			request.Header.Set("Authorization", authHeader)
		}
	}

	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", githubAPIVersion)

	if method == http.MethodGet {
		client.responses.prepare(url, request)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("github: %s %s: %w", method, url, err)
	}

	client.rateLimit.observe(response.Header)

	return response, nil
}

// trusted reports whether url points at the API or raw content host.
func (client *Client) trusted(url string) bool {
	return hasBase(url, client.baseURL) || hasBase(url, client.rawBaseURL)
}

func hasBase(url, base string) bool {
	return url == base || strings.HasPrefix(url, base+"/") || strings.HasPrefix(url, base+"?")
}

// get is a convenience method for GET requests that return a single JSON
// value. Decodes the response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, _, err := client.do(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("github: decoding %s: %w", path, err)
	}
	return nil
}

// list creates a PageIterator for a paginated GET endpoint.
func list[T any](client *Client, path string) *PageIterator[T] {
	return &PageIterator[T]{
		client:  client,
		nextURL: client.baseURL + path,
	}
}

// repoPath builds "/repos/{owner}/{repo}" with both segments escaped.
func repoPath(owner, repo string) string {
	return "/repos/" + neturl.PathEscape(owner) + "/" + neturl.PathEscape(repo)
}

// escapeSlashPath escapes each segment of a slash-separated path while
// keeping the separators.
func escapeSlashPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for index, segment := range segments {
		segments[index] = neturl.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
