// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Galih066/lara-task/lib/notify"
	"github.com/Galih066/lara-task/lib/schema/task"
)

type recordingPoster struct {
	notices []notify.Notice
}

func (poster *recordingPoster) Post(notice notify.Notice) notify.ID {
	poster.notices = append(poster.notices, notice)
	return notify.ID(len(poster.notices))
}

type persisterFunc func(ctx context.Context, taskID string, status task.Status) error

func (function persisterFunc) PersistMove(ctx context.Context, taskID string, status task.Status) error {
	return function(ctx, taskID, status)
}

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := task.ParseDate(value)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", value, err)
	}
	return parsed
}

func scheduled(t *testing.T, id string, status task.Status, priority task.Priority) task.Task {
	return task.Task{
		ID:        id,
		Title:     "task " + id,
		Status:    status,
		Priority:  priority,
		StartDate: date(t, "2024-04-01"),
		DueDate:   date(t, "2024-05-01"),
	}
}

func ids(items []task.Task) []string {
	result := make([]string, len(items))
	for index, item := range items {
		result[index] = item.ID
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for index := range a {
		if a[index] != b[index] {
			return false
		}
	}
	return true
}

func status(t *testing.T, board *Board, id string) task.Status {
	t.Helper()
	item, ok := board.Get(id)
	if !ok {
		t.Fatalf("task %s missing from board", id)
	}
	return item.Status
}

func TestColumnsOrderByPriorityThenInsertion(t *testing.T) {
	board := New([]task.Task{
		{ID: "1", Status: task.StatusTodo, Priority: task.PriorityLow},
		{ID: "2", Status: task.StatusTodo, Priority: task.PriorityHigh},
		{ID: "3", Status: task.StatusDone, Priority: task.PriorityMedium},
		{ID: "4", Status: task.StatusTodo, Priority: task.PriorityHigh},
		{ID: "5", Status: task.StatusTodo, Priority: "urgent"},
		{ID: "6", Status: task.StatusTodo, Priority: task.PriorityMedium},
		{ID: "7", Status: "archived", Priority: task.PriorityHigh},
	})

	columns := board.Columns()
	if len(columns) != len(task.Statuses) {
		t.Fatalf("len(Columns()) = %d, want %d", len(columns), len(task.Statuses))
	}
	for position, column := range columns {
		if column.Status != task.Statuses[position] {
			t.Errorf("column %d status = %s, want %s", position, column.Status, task.Statuses[position])
		}
	}
	if got, want := ids(columns[0].Items), []string{"2", "4", "6", "1", "5"}; !equalStrings(got, want) {
		t.Errorf("todo column = %v, want %v", got, want)
	}
	if columns[1].Items == nil || columns[1].Count() != 0 {
		t.Errorf("in_progress column should be empty and non-nil, got %v", columns[1].Items)
	}
	if got := ids(columns[3].Items); !equalStrings(got, []string{"3"}) {
		t.Errorf("done column = %v, want [3]", got)
	}

	total := 0
	for _, column := range columns {
		total += column.Count()
	}
	if total != 6 {
		t.Errorf("columns hold %d tasks, want 6 (unknown status excluded)", total)
	}

	if index := columns[0].IndexOf("1"); index != 3 {
		t.Errorf("IndexOf(1) = %d, want 3", index)
	}
	if got := ids(board.Column(task.StatusTodo).Items); !equalStrings(got, ids(columns[0].Items)) {
		t.Errorf("Column(todo) = %v, disagrees with Columns()", got)
	}
	if counts := board.Counts(); counts[task.StatusTodo] != 5 || counts[task.StatusReview] != 0 {
		t.Errorf("Counts() = %v", counts)
	}
}

func TestDuplicateIDReplacesInPlace(t *testing.T) {
	board := New([]task.Task{
		{ID: "1", Title: "first", Status: task.StatusTodo},
		{ID: "2", Status: task.StatusTodo},
		{ID: "1", Title: "second", Status: task.StatusTodo},
	})
	if board.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", board.Len())
	}
	if got := ids(board.Items()); !equalStrings(got, []string{"1", "2"}) {
		t.Errorf("Items() = %v", got)
	}
	item, _ := board.Get("1")
	if item.Title != "second" {
		t.Errorf("Title = %q, want second", item.Title)
	}
}

func TestMoveWithoutScheduleIsRejected(t *testing.T) {
	poster := &recordingPoster{}
	board := New([]task.Task{
		{ID: "1", Title: "Write report", Status: task.StatusTodo, Priority: task.PriorityHigh},
		{ID: "2", Title: "Review budget", Status: task.StatusTodo, Priority: task.PriorityLow, DueDate: date(t, "2024-05-01")},
	}, WithNotifier(poster))

	result, err := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusReview})
	if result.Outcome != OutcomeRejected {
		t.Errorf("Outcome = %s, want rejected", result.Outcome)
	}
	var validation *ValidationError
	if !errors.As(err, &validation) || validation.Code != CodeDatesRequired {
		t.Fatalf("err = %v, want ValidationError dates_required", err)
	}
	if !errors.Is(err, ErrDatesRequired) {
		t.Error("errors.Is(err, ErrDatesRequired) = false")
	}
	if got := status(t, board, "1"); got != task.StatusTodo {
		t.Errorf("task 1 status = %s, want todo", got)
	}
	if result.Pending != nil {
		t.Error("rejected move returned a pending move")
	}
	if len(poster.notices) != 1 || poster.notices[0].Code != CodeDatesRequired {
		t.Errorf("notices = %+v, want one dates_required notice", poster.notices)
	}

	// A due date alone is not enough.
	_, err = board.RequestMove(MoveRequest{TaskID: "2", From: task.StatusTodo, To: task.StatusInProgress, FromIndex: 1})
	if !errors.Is(err, ErrDatesRequired) {
		t.Errorf("due-date-only move err = %v, want dates_required", err)
	}
}

func TestMoveWithScheduleCommits(t *testing.T) {
	item := scheduled(t, "1", task.StatusTodo, task.PriorityHigh)
	board := New([]task.Task{item})

	result, err := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusReview})
	if err != nil {
		t.Fatalf("RequestMove: %v", err)
	}
	if result.Outcome != OutcomeCommitted || result.Pending == nil {
		t.Fatalf("result = %+v, want committed with pending", result)
	}
	if result.Pending.Previous != task.StatusTodo || result.Pending.Status != task.StatusReview {
		t.Errorf("Pending = %+v", result.Pending)
	}
	if got := status(t, board, "1"); got != task.StatusReview {
		t.Errorf("status = %s, want review", got)
	}
	if !board.Pending("1") {
		t.Error("Pending(1) = false after commit")
	}
	if got := ids(board.Column(task.StatusReview).Items); !equalStrings(got, []string{"1"}) {
		t.Errorf("review column = %v", got)
	}
}

func TestMoveBackToTodoNeedsNoSchedule(t *testing.T) {
	board := New([]task.Task{{ID: "1", Status: task.StatusDone}})
	result, err := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusDone, To: task.StatusTodo})
	if err != nil || result.Outcome != OutcomeCommitted {
		t.Fatalf("result = %+v, err = %v", result, err)
	}
}

func TestSameSlotIsNoOp(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusDone, task.PriorityLow)})
	result, err := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusDone, To: task.StatusDone, FromIndex: 2, ToIndex: 2})
	if err != nil || result.Outcome != OutcomeUnchanged {
		t.Errorf("result = %+v, err = %v, want unchanged", result, err)
	}

	// Same column, different index: order is derived, nothing to do.
	result, err = board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusDone, To: task.StatusDone, FromIndex: 0, ToIndex: 3})
	if err != nil || result.Outcome != OutcomeUnchanged {
		t.Errorf("reorder result = %+v, err = %v, want unchanged", result, err)
	}
	if board.Pending("1") {
		t.Error("no-op left a move in flight")
	}
}

func TestStaleRequestsAreDeclined(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusInProgress, task.PriorityLow)})

	result, err := board.RequestMove(MoveRequest{TaskID: "missing", From: task.StatusTodo, To: task.StatusDone})
	if err != nil || result.Outcome != OutcomeDeclined {
		t.Errorf("unknown task: result = %+v, err = %v", result, err)
	}

	result, err = board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusDone})
	if err != nil || result.Outcome != OutcomeDeclined {
		t.Errorf("stale source: result = %+v, err = %v", result, err)
	}
	if got := status(t, board, "1"); got != task.StatusInProgress {
		t.Errorf("status = %s, want in_progress", got)
	}
}

func TestUnknownTargetIsRejected(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusTodo, task.PriorityLow)})
	result, err := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: "archived"})
	var validation *ValidationError
	if result.Outcome != OutcomeRejected || !errors.As(err, &validation) || validation.Code != CodeUnknownStatus {
		t.Errorf("result = %+v, err = %v", result, err)
	}
	if errors.Is(err, ErrDatesRequired) {
		t.Error("unknown_status matched ErrDatesRequired")
	}
}

func TestPersistAndConfirm(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusTodo, task.PriorityLow)})
	result, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusDone})

	var gotID string
	var gotStatus task.Status
	ack := Persist(context.Background(), persisterFunc(func(_ context.Context, taskID string, status task.Status) error {
		gotID, gotStatus = taskID, status
		return nil
	}), *result.Pending)
	if gotID != "1" || gotStatus != task.StatusDone {
		t.Errorf("persisted (%s, %s), want (1, done)", gotID, gotStatus)
	}

	if resolution := board.Resolve(ack); resolution != ResolutionConfirmed {
		t.Errorf("Resolve = %s, want confirmed", resolution)
	}
	if board.Pending("1") {
		t.Error("still pending after confirm")
	}
	if got := status(t, board, "1"); got != task.StatusDone {
		t.Errorf("status = %s, want done", got)
	}
}

func TestFailedPersistRollsBack(t *testing.T) {
	poster := &recordingPoster{}
	board := New([]task.Task{scheduled(t, "1", task.StatusTodo, task.PriorityLow)}, WithNotifier(poster))
	result, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusReview})

	resolution := board.Resolve(Ack{Move: *result.Pending, Err: errors.New("connection refused")})
	if resolution != ResolutionRolledBack {
		t.Fatalf("Resolve = %s, want rolled_back", resolution)
	}
	if got := status(t, board, "1"); got != task.StatusTodo {
		t.Errorf("status = %s, want todo", got)
	}
	if len(poster.notices) != 1 || poster.notices[0].Code != "persist_failed" {
		t.Errorf("notices = %+v", poster.notices)
	}
}

func TestLastRequestWins(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusTodo, task.PriorityLow)})

	first, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusInProgress})
	second, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusInProgress, To: task.StatusReview})

	// The older move fails after the newer one was issued: ignored.
	if resolution := board.Resolve(Ack{Move: *first.Pending, Err: errors.New("timeout")}); resolution != ResolutionSuperseded {
		t.Errorf("first Resolve = %s, want superseded", resolution)
	}
	if got := status(t, board, "1"); got != task.StatusReview {
		t.Errorf("status after superseded failure = %s, want review", got)
	}

	// The newest move fails: back to the last confirmed status.
	if resolution := board.Resolve(Ack{Move: *second.Pending, Err: errors.New("timeout")}); resolution != ResolutionRolledBack {
		t.Errorf("second Resolve = %s, want rolled_back", resolution)
	}
	if got := status(t, board, "1"); got != task.StatusTodo {
		t.Errorf("status after rollback = %s, want todo", got)
	}
}

func TestRollbackToNewestConfirmedStatus(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusTodo, task.PriorityLow)})

	first, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusInProgress})
	second, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusInProgress, To: task.StatusDone})

	board.Resolve(Ack{Move: *first.Pending})
	if !board.Pending("1") {
		t.Fatal("confirming an older move cleared the newer in-flight move")
	}
	board.Resolve(Ack{Move: *second.Pending, Err: errors.New("conflict")})
	if got := status(t, board, "1"); got != task.StatusInProgress {
		t.Errorf("status = %s, want in_progress (last confirmed)", got)
	}
}

func TestLateSuccessAfterNewerFailure(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusTodo, task.PriorityLow)})

	first, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusInProgress})
	second, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusInProgress, To: task.StatusReview})

	// The newer move fails first and rolls back to the loaded status.
	if resolution := board.Resolve(Ack{Move: *second.Pending, Err: errors.New("conflict")}); resolution != ResolutionRolledBack {
		t.Fatalf("second Resolve = %s, want rolled_back", resolution)
	}
	if got := status(t, board, "1"); got != task.StatusTodo {
		t.Fatalf("status after rollback = %s, want todo", got)
	}

	// The older move then succeeds: the backend holds in_progress.
	if resolution := board.Resolve(Ack{Move: *first.Pending}); resolution != ResolutionConfirmed {
		t.Errorf("first Resolve = %s, want confirmed", resolution)
	}
	if got := status(t, board, "1"); got != task.StatusInProgress {
		t.Errorf("status after late success = %s, want in_progress", got)
	}
	if board.Pending("1") {
		t.Error("task still pending after every ack arrived")
	}
	if column := board.Column(task.StatusInProgress); column.IndexOf("1") < 0 {
		t.Errorf("task missing from the in_progress column: %v", ids(column.Items))
	}
}

func TestLateSuccessDoesNotOverrideInFlightMove(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusTodo, task.PriorityLow)})

	first, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusInProgress})
	board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusInProgress, To: task.StatusDone})

	board.Resolve(Ack{Move: *first.Pending})
	if got := status(t, board, "1"); got != task.StatusDone {
		t.Errorf("status = %s, want done while the newer move is in flight", got)
	}
}

func TestResolveAfterRemoveIsStale(t *testing.T) {
	board := New([]task.Task{scheduled(t, "1", task.StatusTodo, task.PriorityLow)})
	result, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusDone})
	if !board.Remove("1") {
		t.Fatal("Remove(1) = false")
	}
	if board.Remove("1") {
		t.Error("second Remove(1) = true")
	}
	if resolution := board.Resolve(Ack{Move: *result.Pending, Err: errors.New("gone")}); resolution != ResolutionStale {
		t.Errorf("Resolve = %s, want stale", resolution)
	}
}

func TestRemoveReindexes(t *testing.T) {
	board := New([]task.Task{
		{ID: "1", Status: task.StatusTodo},
		{ID: "2", Status: task.StatusTodo},
		{ID: "3", Status: task.StatusTodo},
	})
	board.Remove("1")
	item, ok := board.Get("3")
	if !ok || item.ID != "3" {
		t.Errorf("Get(3) after Remove(1) = %+v, %v", item, ok)
	}
}

func TestReplaceKeepsInFlightStatus(t *testing.T) {
	board := New([]task.Task{
		scheduled(t, "1", task.StatusTodo, task.PriorityLow),
		scheduled(t, "2", task.StatusTodo, task.PriorityLow),
	})
	result, _ := board.RequestMove(MoveRequest{TaskID: "1", From: task.StatusTodo, To: task.StatusDone})

	// The refetch raced the persist and still reports todo for task 1.
	board.Replace([]task.Task{
		scheduled(t, "1", task.StatusTodo, task.PriorityLow),
		scheduled(t, "2", task.StatusReview, task.PriorityLow),
		scheduled(t, "3", task.StatusTodo, task.PriorityHigh),
	})
	if got := status(t, board, "1"); got != task.StatusDone {
		t.Errorf("in-flight task status = %s, want done", got)
	}
	if got := status(t, board, "2"); got != task.StatusReview {
		t.Errorf("idle task status = %s, want review from refetch", got)
	}
	if board.Len() != 3 {
		t.Errorf("Len() = %d, want 3", board.Len())
	}

	// A failure after the refetch rolls back to the refetched status.
	if resolution := board.Resolve(Ack{Move: *result.Pending, Err: errors.New("boom")}); resolution != ResolutionRolledBack {
		t.Fatalf("Resolve = %s", resolution)
	}
	if got := status(t, board, "1"); got != task.StatusTodo {
		t.Errorf("status = %s, want todo", got)
	}
}

func TestPutConfirmsStatus(t *testing.T) {
	board := New(nil)
	board.Put(scheduled(t, "9", task.StatusReview, task.PriorityHigh))
	result, _ := board.RequestMove(MoveRequest{TaskID: "9", From: task.StatusReview, To: task.StatusDone})
	board.Resolve(Ack{Move: *result.Pending, Err: errors.New("nope")})
	if got := status(t, board, "9"); got != task.StatusReview {
		t.Errorf("status = %s, want review", got)
	}
}

func TestNeighbor(t *testing.T) {
	tests := []struct {
		status task.Status
		delta  int
		want   task.Status
		ok     bool
	}{
		{task.StatusTodo, 1, task.StatusInProgress, true},
		{task.StatusDone, -1, task.StatusReview, true},
		{task.StatusTodo, -1, "", false},
		{task.StatusDone, 1, "", false},
		{"archived", 1, "", false},
	}
	for _, test := range tests {
		got, ok := Neighbor(test.status, test.delta)
		if got != test.want || ok != test.ok {
			t.Errorf("Neighbor(%s, %d) = (%s, %v), want (%s, %v)", test.status, test.delta, got, ok, test.want, test.ok)
		}
	}
}
