// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package view turns collection, board, and selection state into the
// data a rendering surface needs for one frame: visible rows, pager
// control state, column counts, calendar cells. It holds no state and
// makes no decisions about what a move or an activation means.
//
// The package also owns the per-record field strategies ([TaskFields],
// [MemberFields]) so every surface filters and sorts the same way.
package view
