// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Galih066/lara-task/lib/notify"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// MoveRequest describes a drag from one column slot to another.
// Indices are positions within the derived columns. Ordering inside a
// column is derived from priority, so the target index only matters
// for the same-slot no-op guard.
type MoveRequest struct {
	TaskID    string
	From      task.Status
	To        task.Status
	FromIndex int
	ToIndex   int
}

// Outcome is what RequestMove did.
type Outcome int

const (
	// OutcomeUnchanged: the request was a no-op (same slot, or a
	// reorder inside one column).
	OutcomeUnchanged Outcome = iota

	// OutcomeCommitted: the status changed locally and a PendingMove
	// must be persisted.
	OutcomeCommitted

	// OutcomeRejected: a guard refused the move; the error says why.
	OutcomeRejected

	// OutcomeDeclined: the request referenced a task that no longer
	// exists or is no longer in the source column.
	OutcomeDeclined
)

func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeCommitted:
		return "committed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeDeclined:
		return "declined"
	}
	return fmt.Sprintf("Outcome(%d)", int(outcome))
}

// PendingMove is a locally committed move awaiting persistence.
type PendingMove struct {
	TaskID   string
	Status   task.Status
	Previous task.Status
	Sequence uint64
}

// MoveResult is returned by RequestMove. Pending is set only for
// OutcomeCommitted.
type MoveResult struct {
	Outcome Outcome
	Pending *PendingMove
}

// RequestMove applies the move guards and, when they pass, commits the
// new status locally. A rejection returns a *ValidationError; declines
// and no-ops return a nil error.
func (board *Board) RequestMove(request MoveRequest) (MoveResult, error) {
	if request.From == request.To && request.FromIndex == request.ToIndex {
		return MoveResult{Outcome: OutcomeUnchanged}, nil
	}

	position, exists := board.index[request.TaskID]
	if !exists {
		board.logger.Debug("move declined: task not on board", "task", request.TaskID)
		return MoveResult{Outcome: OutcomeDeclined}, nil
	}
	item := board.items[position]
	if item.Status != request.From {
		board.logger.Debug("move declined: stale source column",
			"task", request.TaskID,
			"from", request.From,
			"actual", item.Status,
		)
		return MoveResult{Outcome: OutcomeDeclined}, nil
	}

	if request.From == request.To {
		return MoveResult{Outcome: OutcomeUnchanged}, nil
	}

	if !request.To.Valid() {
		return MoveResult{Outcome: OutcomeRejected}, &ValidationError{
			Code:   CodeUnknownStatus,
			TaskID: item.ID,
			Target: request.To,
		}
	}

	if request.To != task.DefaultStatus && !item.HasSchedule() {
		err := &ValidationError{Code: CodeDatesRequired, TaskID: item.ID, Target: request.To}
		board.post(notify.Notice{
			Level: slog.LevelWarn,
			Code:  CodeDatesRequired,
			Message: fmt.Sprintf("Set a start date and a due date before moving %s to %s",
				quoted(item), request.To.Label()),
		})
		return MoveResult{Outcome: OutcomeRejected}, err
	}

	previous := item.Status
	item.Status = request.To
	board.items[position] = item

	board.sequence++
	board.latest[item.ID] = board.sequence

	return MoveResult{
		Outcome: OutcomeCommitted,
		Pending: &PendingMove{
			TaskID:   item.ID,
			Status:   request.To,
			Previous: previous,
			Sequence: board.sequence,
		},
	}, nil
}

// Persister stores a status change in the backend.
type Persister interface {
	PersistMove(ctx context.Context, taskID string, status task.Status) error
}

// Ack is the backend's answer to a PendingMove.
type Ack struct {
	Move PendingMove
	Err  error
}

// Persist sends the move to the backend. It touches no board state and
// is meant to run inside a tea.Cmd; the returned Ack goes back to
// Resolve on the update loop.
func Persist(ctx context.Context, persister Persister, move PendingMove) Ack {
	return Ack{Move: move, Err: persister.PersistMove(ctx, move.TaskID, move.Status)}
}

// Resolution is what Resolve did with an Ack.
type Resolution int

const (
	// ResolutionConfirmed: the backend accepted the move.
	ResolutionConfirmed Resolution = iota

	// ResolutionRolledBack: the newest move for the task failed and
	// the task returned to its last confirmed status.
	ResolutionRolledBack

	// ResolutionSuperseded: the move failed, but a newer move for the
	// same task is in flight, so the failure is ignored.
	ResolutionSuperseded

	// ResolutionStale: the task left the board before the ack arrived.
	ResolutionStale
)

func (resolution Resolution) String() string {
	switch resolution {
	case ResolutionConfirmed:
		return "confirmed"
	case ResolutionRolledBack:
		return "rolled_back"
	case ResolutionSuperseded:
		return "superseded"
	case ResolutionStale:
		return "stale"
	}
	return fmt.Sprintf("Resolution(%d)", int(resolution))
}

// Resolve reconciles an Ack with the working set.
func (board *Board) Resolve(ack Ack) Resolution {
	move := ack.Move
	position, exists := board.index[move.TaskID]
	if !exists {
		return ResolutionStale
	}
	isLatest := board.latest[move.TaskID] == move.Sequence

	if ack.Err == nil {
		newest := move.Sequence > board.confirmedSequence[move.TaskID]
		if newest {
			board.confirmed[move.TaskID] = move.Status
			board.confirmedSequence[move.TaskID] = move.Sequence
		}
		if isLatest {
			delete(board.latest, move.TaskID)
		}
		// A newer move may already have failed and rolled the task back
		// to an older status. With nothing left in flight the task must
		// show what the backend now holds.
		if _, inFlight := board.latest[move.TaskID]; newest && !inFlight {
			item := board.items[position]
			item.Status = move.Status
			board.items[position] = item
		}
		return ResolutionConfirmed
	}

	if !isLatest {
		board.logger.Debug("ignoring failure of superseded move",
			"task", move.TaskID,
			"sequence", move.Sequence,
			"error", ack.Err,
		)
		return ResolutionSuperseded
	}

	delete(board.latest, move.TaskID)
	item := board.items[position]
	restored := board.confirmed[move.TaskID]
	if restored == "" {
		restored = move.Previous
	}
	item.Status = restored
	board.items[position] = item

	board.logger.Debug("move failed, reverted",
		"task", move.TaskID,
		"target", move.Status,
		"restored", restored,
		"error", ack.Err,
	)
	board.post(notify.Notice{
		Level: slog.LevelError,
		Code:  "persist_failed",
		Message: fmt.Sprintf("Could not move %s to %s: %v. Returned to %s",
			quoted(item), move.Status.Label(), ack.Err, restored.Label()),
	})
	return ResolutionRolledBack
}
