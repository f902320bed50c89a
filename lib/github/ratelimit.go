// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bureau-foundation/agent-templates/lib/clock"
)

// RateLimitStatus is a snapshot of the rate limit headers from the most
// recent response. Known is false until a response carried them.
type RateLimitStatus struct {
	Known     bool
	Remaining int
	Reset     time.Time
}

// ErrQuotaExhausted is returned before sending a request when the last
// response reported no remaining quota and the window has not reset.
var ErrQuotaExhausted = fmt.Errorf("github: API rate limit exhausted")

// rateLimiter remembers the last advertised quota. Requests are never
// delayed or re-sent: an exhausted quota fails the request outright.
type rateLimiter struct {
	clock clock.Clock

	mu      sync.Mutex
	current RateLimitStatus
}

func newRateLimiter(clock clock.Clock) *rateLimiter {
	return &rateLimiter{clock: clock}
}

// parseQuota reads X-RateLimit-Remaining and X-RateLimit-Reset. ok is
// false when either header is absent or malformed.
func parseQuota(header http.Header) (remaining int, reset time.Time, ok bool) {
	remaining, err := strconv.Atoi(header.Get("X-RateLimit-Remaining"))
	if err != nil {
		return 0, time.Time{}, false
	}
	resetUnix, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return 0, time.Time{}, false
	}
	return remaining, time.Unix(resetUnix, 0), true
}

func (limiter *rateLimiter) observe(header http.Header) {
	remaining, reset, ok := parseQuota(header)
	if !ok {
		return
	}
	limiter.mu.Lock()
	limiter.current = RateLimitStatus{Known: true, Remaining: remaining, Reset: reset}
	limiter.mu.Unlock()
}

func (limiter *rateLimiter) status() RateLimitStatus {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return limiter.current
}

// admit reports ErrQuotaExhausted while the last observed window has no
// requests left and has not reset yet.
func (limiter *rateLimiter) admit() error {
	current := limiter.status()
	if !current.Known || current.Remaining > 0 {
		return nil
	}
	if !current.Reset.After(limiter.clock.Now()) {
		return nil
	}
	return fmt.Errorf("%w until %s", ErrQuotaExhausted, current.Reset.UTC().Format(time.RFC3339))
}
