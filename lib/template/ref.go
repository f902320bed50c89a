// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"
)

// Ref identifies a template to load: a name and an optional explicit
// version. Two refs with the same Name are the same template regardless
// of Version.
type Ref struct {
	Name string

	// Version is the tag suffix after "<name>/", e.g. "v1.2.0". Empty
	// means the latest semver tag, or the default branch if none.
	Version string
}

// ParseRef parses "name" or "name@version". The split is on the first
// "@", so the version may itself contain "@". An empty name returns an
// error wrapping ErrEmptyName.
func ParseRef(spec string) (Ref, error) {
	name, version, _ := strings.Cut(spec, "@")
	if name == "" {
		return Ref{}, fmt.Errorf("parsing template reference %q: %w", spec, ErrEmptyName)
	}
	return Ref{Name: name, Version: version}, nil
}

// String renders the ref in the form ParseRef accepts.
func (ref Ref) String() string {
	if ref.Version == "" {
		return ref.Name
	}
	return ref.Name + "@" + ref.Version
}
