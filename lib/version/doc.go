// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which build of the agents binary is running.
//
// Release builds set [Version], [GitCommit], [GitDirty] and [BuildTime]
// with -ldflags -X. A plain "go install" leaves the defaults, and the VCS
// stamp embedded by the toolchain supplies the commit, dirty flag and
// time instead. A test binary has neither and reports "0.1.0-dev" with
// an "unknown" commit.
//
// [Short] is the bare version, [Commit] the short SHA, [Info] the
// version with commit and build time, and [Full] adds the Go toolchain
// and platform for "agents version".
package version
