// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

const (
	// ExitFailure is the exit status for any fatal error that is not a
	// usage mistake.
	ExitFailure = 1

	// ExitUsage is the exit status for usage and validation errors.
	ExitUsage = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, main
// exits with the specified code without printing the error string;
// the command is expected to have already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeFor maps an error returned by a command to the process exit
// status: 0 for nil, the embedded code for an [ExitError], 2 for
// validation errors, and 1 otherwise.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	if CategoryOf(err) == CategoryValidation {
		return ExitUsage
	}
	return ExitFailure
}
