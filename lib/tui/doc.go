// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks shared by the
// taskboard views: the color theme, fzf-backed fuzzy matching that
// plugs into the collection engine, markdown rendering for task
// descriptions (goldmark, with chroma highlighting fenced code),
// dropdown overlays, a scrollbar, and the heat tracker that makes
// freshly moved cards glow.
//
// Nothing here knows about bubbletea models; lib/taskui owns the
// interactive state and calls into this package to draw.
package tui
