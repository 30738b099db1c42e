// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package board partitions tasks into status columns and mediates moves
// between them.
//
// The board stores one flat list of tasks in insertion order, indexed
// by ID. Columns are never stored: [Board.Columns] derives them on
// every call by grouping tasks on status and ordering each group by
// priority (high, medium, low), with ties kept in insertion order.
//
// A move goes through [Board.RequestMove], which applies three guards
// in order:
//
//  1. Same column and same index: nothing happens.
//  2. Unknown task, or a source column that no longer matches the
//     task: the move is declined without an error.
//  3. Any column other than todo requires both a start and a due
//     date; otherwise the move is rejected with a [ValidationError]
//     whose code is "dates_required", and a notice is posted.
//
// A move that passes is committed locally at once and returns a
// [PendingMove]. The caller persists it off the update loop with
// [Persist] and hands the resulting [Ack] back to [Board.Resolve].
// Acks are reconciled per task with last-request-wins: a failure
// rolls the task back to its last confirmed status only when no newer
// move for that task has been issued since.
package board
