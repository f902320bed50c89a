// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package release implements the registry maintainers' version bump:
// increment a template's semantic version, rewrite the "version:" line
// of its template.yaml in place, and name the "<name>/v<version>" tag
// that publishes it to loaders.
//
// The rewrite touches only the version line. Comments, dependency
// lists and any other keys are preserved byte for byte so that the
// resulting diff is a single line.
package release
