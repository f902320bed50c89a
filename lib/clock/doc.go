// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Production code accepts a [Clock] instead of calling time.Now
// directly. [Real] delegates to the time package. [Fake]
// returns a [FakeClock] that stands still until [FakeClock.Advance] is
// called, which keeps manifest timestamps and rate-limit windows
// deterministic in tests:
//
//	fakeClock := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	writer := manifest.NewWriter(path, fakeClock)
package clock
