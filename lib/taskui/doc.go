// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskui implements the terminal user interface for the task
// board. Built on bubbletea, it offers four screens over one working
// set: a paginated task list, a kanban board, a member list, and a
// month calendar.
//
// The working set lives in a [board.Board]. Every message rebuilds the
// screens from it through the [view] adapters, so the list, board, and
// calendar always agree. Board moves are committed optimistically and
// persisted off the update loop; the acknowledgement comes back as a
// message and is reconciled with [board.Board.Resolve].
//
// Generic components (theme, fuzzy matching, markdown, dropdowns,
// scrollbars) live in [tui]. Notices from the board and from the
// logger reach the status bar through a [notify.Bus].
//
// Data flow:
//
//	[backend.Backend] (memory or unix socket)
//	        | fetch / persist / create / delete
//	    [Model] <- bubbletea event loop
//	        | view.BuildList / BuildBoard / BuildCalendar
//	  [terminal output]
package taskui
