// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestReadLimited(t *testing.T) {
	t.Run("at limit", func(t *testing.T) {
		data, err := ReadLimited(strings.NewReader("12345"), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "12345" {
			t.Fatalf("got %q, want %q", data, "12345")
		}
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := ReadLimited(strings.NewReader("123456"), 5)
		if !errors.Is(err, ErrTooLarge) {
			t.Fatalf("error = %v, want ErrTooLarge", err)
		}
	})

	t.Run("read error propagates", func(t *testing.T) {
		if _, err := ReadLimited(&failReader{}, 5); err == nil || errors.Is(err, ErrTooLarge) {
			t.Fatalf("error = %v, want reader failure", err)
		}
	})
}

func TestReadLimitedSizes(t *testing.T) {
	if MaxDownloadSize >= MaxResponseSize {
		t.Errorf("MaxDownloadSize (%d) should be below MaxResponseSize (%d)", MaxDownloadSize, MaxResponseSize)
	}
	body := bytes.Repeat([]byte("x"), int(MaxDownloadSize))
	data, err := ReadLimited(bytes.NewReader(body), MaxDownloadSize)
	if err != nil || len(data) != len(body) {
		t.Fatalf("ReadLimited at MaxDownloadSize: %d bytes, err %v", len(data), err)
	}
}

type failReader struct{}

func (*failReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("simulated read failure")
}
