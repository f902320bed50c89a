// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the API or the raw content host.
// The API sends a JSON body with a message; the raw host sends plain
// text, which becomes the message as-is.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is GitHub's description of the failure.
	Message string

	// DocumentationURL points to the relevant API documentation, when
	// the API supplied one.
	DocumentationURL string

	// URL is the request URL.
	URL string
}

func (err *APIError) Error() string {
	message := err.Message
	if message == "" {
		message = http.StatusText(err.StatusCode)
	}
	if err.URL == "" {
		return fmt.Sprintf("github: HTTP %d: %s", err.StatusCode, message)
	}
	return fmt.Sprintf("github: HTTP %d from %s: %s", err.StatusCode, err.URL, message)
}

// newAPIError builds an APIError from a failed response body.
func newAPIError(statusCode int, url string, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode, URL: url}

	var wireError struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Message != "" {
		apiError.Message = wireError.Message
		apiError.DocumentationURL = wireError.DocumentationURL
	} else {
		apiError.Message = strings.TrimSpace(string(body))
	}
	return apiError
}

func statusOf(err error) int {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return 0
	}
	return apiError.StatusCode
}

// IsNotFound reports whether err is a 404. GitHub also answers 404 for
// private repositories reached without access.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsRateLimited reports whether err is a rate limit response: 429 for
// secondary limits, or 403 with a rate limit message for the primary
// one. ErrQuotaExhausted counts too.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return false
	}
	switch apiError.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		return isRateLimitMessage(apiError.Message)
	}
	return false
}

// IsAccessDenied reports whether err is a 401, or a 403 that is not a
// rate limit: a bad token, or a token without access to the repository.
func IsAccessDenied(err error) bool {
	switch statusOf(err) {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden:
		return !IsRateLimited(err)
	}
	return false
}

// IsTransient reports whether retrying later may succeed: rate limits
// and server-side failures.
func IsTransient(err error) bool {
	return IsRateLimited(err) || statusOf(err) >= http.StatusInternalServerError
}

func isRateLimitMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "abuse detection")
}
