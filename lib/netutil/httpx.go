// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds HTTP response body reads.
//
// Registry responses come from a remote server the loader does not
// control. [ReadLimited] caps a body at [MaxResponseSize] for API
// listings or [MaxDownloadSize] for payload files, failing with
// [ErrTooLarge] rather than silently truncating a template file.
package netutil

import (
	"errors"
	"fmt"
	"io"
)

// MaxResponseSize bounds JSON API response reads: 32 MB. Directory
// listings and ref listings are orders of magnitude smaller.
const MaxResponseSize int64 = 32 << 20

// MaxDownloadSize bounds a single template payload file: 8 MB.
const MaxDownloadSize int64 = 8 << 20

// ErrTooLarge is returned by ReadLimited when the body exceeds the limit.
var ErrTooLarge = errors.New("response body exceeds size limit")

// ReadLimited reads body completely, returning ErrTooLarge (wrapped with
// the limit) if it holds more than limit bytes.
func ReadLimited(body io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}
	return data, nil
}
