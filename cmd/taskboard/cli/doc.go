// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the taskboard
// CLI.
//
// The central type is [Command]: a named command with optional nested
// [Command.Subcommands], a [pflag.FlagSet] factory, and a Run function.
// [Command.Execute] parses flags, routes subcommands, and prints help
// with examples. Unknown commands and flags get a suggestion when a
// known name is within an edit distance of 3.
//
// Errors returned by commands are [ToolError] values whose category
// picks the process exit code. [Classify] maps backend errors onto
// those categories. [NewCommandLogger] builds the stderr logger for
// non-interactive commands; the TUI commands instead combine a
// notification handler and an optional file handler with
// [FanoutHandler].
package cli
