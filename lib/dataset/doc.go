// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset loads task and member snapshots from disk and
// fingerprints them so a refetch can report what changed.
//
// Snapshots are JSON arrays, {"data": [...]} envelopes, or JSON lines.
// Files ending in .jsonc may carry comments and trailing commas; a
// trailing .zst or .lz4 is decompressed first. Field names follow the
// backend's snake_case with camelCase aliases (dueDate, startDate), and
// ids may be numbers or strings.
package dataset
