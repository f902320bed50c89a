// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Part selects which component of a version to increment.
type Part string

const (
	PartPatch Part = "patch"
	PartMinor Part = "minor"
	PartMajor Part = "major"
)

// ErrInvalidVersion is returned for versions that are not semantic
// versions of the form MAJOR.MINOR.PATCH with optional pre-release and
// build suffixes.
var ErrInvalidVersion = errors.New("invalid semantic version")

// ParsePart validates a part name from the command line.
func ParsePart(value string) (Part, error) {
	switch part := Part(strings.ToLower(value)); part {
	case PartPatch, PartMinor, PartMajor:
		return part, nil
	}
	return "", fmt.Errorf("unknown version part %q (expected patch, minor, or major)", value)
}

// Bump returns version incremented by part. A leading "v" is accepted
// and preserved. An empty version is treated as 0.0.0.
//
// A pre-release version is promoted to its release rather than skipped
// past: bumping the patch of 1.2.0-rc.1 yields 1.2.0, and bumping the
// minor of 1.3.0-rc.1 yields 1.3.0. Build metadata is dropped.
func Bump(version string, part Part) (string, error) {
	prefix := ""
	if strings.HasPrefix(version, "v") {
		prefix = "v"
	}
	bare := strings.TrimPrefix(version, "v")
	if bare == "" {
		bare = "0.0.0"
	}

	// semver.IsValid accepts "v1" and "v1.2" shorthands; template
	// versions must be fully spelled out.
	numeric := bare
	if position := strings.IndexAny(bare, "-+"); position >= 0 {
		numeric = bare[:position]
	}
	if !semver.IsValid("v"+bare) || strings.Count(numeric, ".") != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	canonical := semver.Canonical("v" + bare)
	prerelease := semver.Prerelease(canonical)
	core := strings.TrimPrefix(strings.TrimSuffix(canonical, prerelease), "v")

	fields := strings.Split(core, ".")
	numbers := make([]int, 3)
	for index, field := range fields {
		number, err := strconv.Atoi(field)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidVersion, version)
		}
		numbers[index] = number
	}
	major, minor, patch := numbers[0], numbers[1], numbers[2]

	switch part {
	case PartPatch:
		if prerelease == "" {
			patch++
		}
	case PartMinor:
		if prerelease == "" || patch != 0 {
			minor++
		}
		patch = 0
	case PartMajor:
		if prerelease == "" || minor != 0 || patch != 0 {
			major++
		}
		minor, patch = 0, 0
	default:
		return "", fmt.Errorf("unknown version part %q", part)
	}

	return fmt.Sprintf("%s%d.%d.%d", prefix, major, minor, patch), nil
}

// TagName returns the git tag that publishes version of a template.
func TagName(name, version string) string {
	return name + "/v" + strings.TrimPrefix(version, "v")
}
