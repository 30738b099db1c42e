// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build information for the taskboard binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// These default to "unknown" / "0.1.0-dev" when not injected, which
// occurs during development builds and test runs.
//
// [Info], [Full], and [Short] format them for --version output.
// [SelfDigest] identifies the exact binary by its content, which is
// what `taskboard version --digest` prints for bug reports.
package version
