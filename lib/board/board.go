// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Galih066/lara-task/lib/notify"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// Column is a derived status bucket.
type Column struct {
	Status task.Status
	Items  []task.Task
}

// Count returns the number of tasks in the column.
func (column Column) Count() int { return len(column.Items) }

// IndexOf returns the position of the task in the column, or -1.
func (column Column) IndexOf(taskID string) int {
	return slices.IndexFunc(column.Items, func(item task.Task) bool { return item.ID == taskID })
}

// Option configures a Board.
type Option func(*Board)

// WithNotifier posts rejection and rollback notices to poster.
func WithNotifier(poster notify.Poster) Option {
	return func(board *Board) { board.notifier = poster }
}

// WithLogger sets the logger for declined moves and reconciliation.
func WithLogger(logger *slog.Logger) Option {
	return func(board *Board) { board.logger = logger }
}

// Board owns the working set of tasks and the bookkeeping for moves
// that have been committed locally but not yet acknowledged.
//
// Board is not safe for concurrent use. All methods run on the UI
// update loop; only [Persist] runs elsewhere.
type Board struct {
	items []task.Task
	index map[string]int

	// confirmed is the last status the backend is known to hold for
	// each task: the loaded status, or the target of the newest
	// successfully persisted move.
	confirmed map[string]task.Status

	// confirmedSequence guards confirmed against acks that arrive out
	// of order.
	confirmedSequence map[string]uint64

	// latest maps a task ID to the sequence of its newest in-flight
	// move. Absent when nothing is in flight.
	latest map[string]uint64

	sequence uint64

	notifier notify.Poster
	logger   *slog.Logger
}

// New creates a board over items. Later duplicates of an ID replace
// the earlier record in place.
func New(items []task.Task, options ...Option) *Board {
	board := &Board{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(board)
	}
	board.load(items)
	return board
}

func (board *Board) load(items []task.Task) {
	board.items = make([]task.Task, 0, len(items))
	board.index = make(map[string]int, len(items))
	board.confirmed = make(map[string]task.Status, len(items))
	board.confirmedSequence = make(map[string]uint64)
	board.latest = make(map[string]uint64)
	for _, item := range items {
		board.put(item)
		board.confirmed[item.ID] = item.Status
	}
}

func (board *Board) put(item task.Task) {
	if position, exists := board.index[item.ID]; exists {
		board.items[position] = item
		return
	}
	board.index[item.ID] = len(board.items)
	board.items = append(board.items, item)
}

// Len returns the number of tasks on the board.
func (board *Board) Len() int { return len(board.items) }

// Items returns a copy of the working set in insertion order.
func (board *Board) Items() []task.Task {
	return slices.Clone(board.items)
}

// Get returns the task with the given ID.
func (board *Board) Get(taskID string) (task.Task, bool) {
	position, exists := board.index[taskID]
	if !exists {
		return task.Task{}, false
	}
	return board.items[position], true
}

// Columns derives every status column in board order. Tasks with a
// status outside the known set are left out.
func (board *Board) Columns() []Column {
	columns := make([]Column, len(task.Statuses))
	for position, status := range task.Statuses {
		columns[position] = Column{Status: status, Items: []task.Task{}}
	}
	for _, item := range board.items {
		if position := item.Status.Index(); position >= 0 {
			columns[position].Items = append(columns[position].Items, item)
		}
	}
	for position := range columns {
		sortByPriority(columns[position].Items)
	}
	return columns
}

// Column derives a single column.
func (board *Board) Column(status task.Status) Column {
	column := Column{Status: status, Items: []task.Task{}}
	for _, item := range board.items {
		if item.Status == status {
			column.Items = append(column.Items, item)
		}
	}
	sortByPriority(column.Items)
	return column
}

// Counts returns the number of tasks per status.
func (board *Board) Counts() map[task.Status]int {
	counts := make(map[task.Status]int, len(task.Statuses))
	for _, status := range task.Statuses {
		counts[status] = 0
	}
	for _, item := range board.items {
		if item.Status.Valid() {
			counts[item.Status]++
		}
	}
	return counts
}

func sortByPriority(items []task.Task) {
	slices.SortStableFunc(items, func(a, b task.Task) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
}

// Put inserts a new task at the end of the working set or replaces an
// existing one in place. Used after a create or update succeeds; the
// stored status becomes the confirmed status.
func (board *Board) Put(item task.Task) {
	board.put(item)
	if _, pending := board.latest[item.ID]; !pending {
		board.confirmed[item.ID] = item.Status
	}
}

// Remove deletes a task from the working set. In-flight moves for it
// resolve as stale.
func (board *Board) Remove(taskID string) bool {
	position, exists := board.index[taskID]
	if !exists {
		return false
	}
	board.items = slices.Delete(board.items, position, position+1)
	delete(board.index, taskID)
	for index := position; index < len(board.items); index++ {
		board.index[board.items[index].ID] = index
	}
	delete(board.confirmed, taskID)
	delete(board.confirmedSequence, taskID)
	delete(board.latest, taskID)
	return true
}

// Replace swaps in a freshly fetched working set. Tasks with a move
// still in flight keep their optimistic status until that move
// resolves; every other task takes the fetched status.
func (board *Board) Replace(items []task.Task) {
	inflight := make(map[string]task.Status)
	for taskID := range board.latest {
		if current, exists := board.Get(taskID); exists {
			inflight[taskID] = current.Status
		}
	}
	latest := board.latest
	sequences := board.confirmedSequence

	board.load(items)

	for taskID, status := range inflight {
		position, exists := board.index[taskID]
		if !exists {
			continue
		}
		board.items[position].Status = status
		board.latest[taskID] = latest[taskID]
		if sequence, known := sequences[taskID]; known {
			board.confirmedSequence[taskID] = sequence
		}
	}
}

// Pending reports whether a move for the task is awaiting its ack.
func (board *Board) Pending(taskID string) bool {
	_, pending := board.latest[taskID]
	return pending
}

// Neighbor returns the status delta columns away from status, and
// false when that runs off either end of the board.
func Neighbor(status task.Status, delta int) (task.Status, bool) {
	position := status.Index()
	if position < 0 {
		return "", false
	}
	target := position + delta
	if target < 0 || target >= len(task.Statuses) {
		return "", false
	}
	return task.Statuses[target], true
}

func (board *Board) post(notice notify.Notice) {
	if board.notifier != nil {
		board.notifier.Post(notice)
	}
}

func quoted(item task.Task) string {
	return fmt.Sprintf("%q", item.Title)
}
