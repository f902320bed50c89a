// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyName is returned by ParseRef when the template name is empty.
var ErrEmptyName = errors.New("template name is empty")

// ErrInvalidName is returned by ValidateName for names that are not a
// single path segment.
var ErrInvalidName = errors.New("template name is not a single path segment")

// ErrNotFound is wrapped by Registry implementations when a path or
// revision does not exist.
var ErrNotFound = errors.New("not found in registry")

// NotFoundError reports that a template has no payload at a revision:
// the template directory does not exist, the revision does not exist,
// or the directory holds no downloadable files.
type NotFoundError struct {
	Name     string
	Revision Revision

	// Err is the registry error, or nil when the listing was empty.
	Err error
}

func (err *NotFoundError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("template %q not found at %s: %v", err.Name, err.Revision, err.Err)
	}
	return fmt.Sprintf("template %q has no files at %s", err.Name, err.Revision)
}

func (err *NotFoundError) Unwrap() error { return err.Err }

// CycleError reports a template that depends on itself, directly or
// through other templates. Chain is the ancestry path ending with the
// repeated name, e.g. [a b a].
type CycleError struct {
	Name  string
	Chain []string
}

func (err *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle at template %q: %s", err.Name, strings.Join(err.Chain, " -> "))
}
