// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Galih066/lara-task/lib/backend"
	"github.com/Galih066/lara-task/lib/board"
	"github.com/Galih066/lara-task/lib/clock"
	"github.com/Galih066/lara-task/lib/schema/task"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var epoch = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := task.ParseDate(value)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}

func fixtureBackend(t *testing.T, fake *clock.FakeClock) *backend.Memory {
	t.Helper()
	return backend.NewMemory(
		[]task.Task{
			{ID: "t1", Title: "Write report", Status: task.StatusTodo, Priority: task.PriorityHigh,
				StartDate: date(t, "2024-04-20"), DueDate: date(t, "2024-05-10"),
				Assignees: []task.UserRef{{ID: "m1"}}},
			{ID: "t2", Title: "Review budget", Status: task.StatusTodo, Priority: task.PriorityMedium},
			{ID: "t3", Title: "Plan offsite", Status: task.StatusInProgress, Priority: task.PriorityLow,
				StartDate: date(t, "2024-04-25"), DueDate: date(t, "2024-05-03")},
			{ID: "t4", Title: "Ship release", Status: task.StatusDone, Priority: task.PriorityHigh,
				StartDate: date(t, "2024-04-01"), DueDate: date(t, "2024-04-28")},
		},
		[]task.Member{
			{ID: "m1", Name: "Sari", Status: task.MemberActive},
			{ID: "m2", Name: "Budi", Status: task.MemberActive},
		},
		fake,
		nil,
	)
}

// loadedModel returns a sized model with the fixture working set
// loaded.
func loadedModel(t *testing.T, source backend.Backend, fake *clock.FakeClock) Model {
	t.Helper()
	model := NewModel(Options{Backend: source, Clock: fake, PageSize: 2})
	model, _ = send(t, model, tea.WindowSizeMsg{Width: 120, Height: 30})
	model, _ = send(t, model, model.fetch()())
	if model.source.Len() != 4 {
		t.Fatalf("loaded %d tasks, want 4", model.source.Len())
	}
	return model
}

func send(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := model.Update(message)
	return updated.(Model), cmd
}

func press(t *testing.T, model Model, name string) (Model, tea.Cmd) {
	t.Helper()
	var message tea.KeyMsg
	switch name {
	case "enter":
		message = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		message = tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		message = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		message = tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		message = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
	return send(t, model, message)
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, r := range text {
		model, _ = press(t, model, string(r))
	}
	return model
}

// persistFrom runs the persist command out of the batch a committed
// move returns.
func persistFrom(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("committed move returned no command")
	}
	message := cmd()
	if batch, ok := message.(tea.BatchMsg); ok {
		message = batch[0]()
	}
	if _, ok := message.(ackMsg); !ok {
		t.Fatalf("persist produced %T, want ackMsg", message)
	}
	return message
}

func statusOf(t *testing.T, model Model, taskID string) task.Status {
	t.Helper()
	item, ok := model.source.Get(taskID)
	if !ok {
		t.Fatalf("task %s missing", taskID)
	}
	return item.Status
}

func latestCode(t *testing.T, model Model) string {
	t.Helper()
	notice, ok := model.bus.Latest()
	if !ok {
		t.Fatal("no notice posted")
	}
	return notice.Code
}

func TestParseScreen(t *testing.T) {
	for _, name := range []string{"tasks", "board", "members", "calendar"} {
		screen, err := ParseScreen(name)
		if err != nil {
			t.Fatalf("ParseScreen(%q): %v", name, err)
		}
		if screen.String() != name {
			t.Errorf("ParseScreen(%q).String() = %q", name, screen.String())
		}
	}
	if _, err := ParseScreen("gantt"); err == nil {
		t.Error("ParseScreen(gantt) should fail")
	}
}

func TestViewBeforeSizeIsLoading(t *testing.T) {
	fake := clock.Fake(epoch)
	model := NewModel(Options{Backend: fixtureBackend(t, fake), Clock: fake})
	if got := model.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestTaskListPagesByDueDate(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	rows := model.tasks.list.Rows
	if len(rows) != 2 || rows[0].Item.ID != "t4" || rows[1].Item.ID != "t3" {
		t.Fatalf("first page = %v, want t4 t3", rows)
	}
	view := model.View()
	for _, want := range []string{"Ship release", "Plan offsite", "1-2 of 4 · page 1/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	model, _ = press(t, model, "l")
	rows = model.tasks.list.Rows
	if len(rows) != 2 || rows[0].Item.ID != "t1" || rows[1].Item.ID != "t2" {
		t.Fatalf("second page = %v, want t1 t2 (undated last)", rows)
	}
	if names := rows[0].Item.AssigneeNames(); len(names) != 1 || names[0] != "Sari" {
		t.Errorf("assignees = %v, want [Sari] resolved from members", names)
	}
}

func TestStatusFilterResetsToFirstPage(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "l")
	if page := model.tasks.controller.Page(); page != 2 {
		t.Fatalf("page = %d, want 2", page)
	}
	model, _ = press(t, model, "s")
	if model.tasks.spec.StatusFilter != string(task.StatusTodo) {
		t.Fatalf("status filter = %q, want todo", model.tasks.spec.StatusFilter)
	}
	if page := model.tasks.controller.Page(); page != 1 {
		t.Errorf("page after filter change = %d, want 1", page)
	}
	for _, row := range model.tasks.list.Rows {
		if row.Item.Status != task.StatusTodo {
			t.Errorf("row %s has status %s", row.Item.ID, row.Item.Status)
		}
	}

	model, _ = press(t, model, "c")
	if model.tasks.list.Pager.Total != 4 {
		t.Errorf("total after clear = %d, want 4", model.tasks.list.Pager.Total)
	}
}

func TestSortKeepsPage(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "l")
	model, _ = press(t, model, "O")
	if model.tasks.spec.SortDirection != "desc" {
		t.Fatalf("direction = %q, want desc", model.tasks.spec.SortDirection)
	}
	if page := model.tasks.controller.Page(); page != 2 {
		t.Errorf("page after sort change = %d, want 2", page)
	}
}

func TestSearchFiltersAsYouType(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "/")
	if !model.tasks.searching {
		t.Fatal("/ should start searching")
	}
	model = typeText(t, model, "report")
	model, _ = press(t, model, "enter")
	if model.tasks.searching {
		t.Error("enter should leave search mode")
	}
	if model.tasks.spec.SearchTerm != "report" {
		t.Errorf("search term = %q", model.tasks.spec.SearchTerm)
	}
	if rows := model.tasks.list.Rows; len(rows) != 1 || rows[0].Item.ID != "t1" {
		t.Errorf("rows = %v, want only t1", rows)
	}
}

func TestActivateOpensDetail(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "j")
	model, _ = press(t, model, "enter")
	if model.detail.taskID != "t4" {
		t.Fatalf("detail task = %q, want t4", model.detail.taskID)
	}
	if !strings.Contains(model.View(), "Initiator") {
		t.Error("detail pane not rendered")
	}
	model, _ = press(t, model, "esc")
	if model.detail.active() {
		t.Error("esc should close the detail pane")
	}
}

func TestDeleteFocusedTask(t *testing.T) {
	fake := clock.Fake(epoch)
	memory := fixtureBackend(t, fake)
	model := loadedModel(t, memory, fake)

	model, _ = press(t, model, "j")
	model, cmd := press(t, model, "x")
	if cmd == nil {
		t.Fatal("x returned no command")
	}
	model, _ = send(t, model, cmd())
	if _, ok := model.source.Get("t4"); ok {
		t.Error("t4 still on the board")
	}
	if code := latestCode(t, model); code != "deleted" {
		t.Errorf("notice code = %q, want deleted", code)
	}
	remaining, _ := memory.Tasks(context.Background())
	if len(remaining) != 3 {
		t.Errorf("backend holds %d tasks, want 3", len(remaining))
	}
}

func TestBoardMoveWithoutDatesIsRejected(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "2")
	model, _ = press(t, model, "j")
	if item, _ := model.board.focused(); item.ID != "t2" {
		t.Fatalf("focused card = %q, want t2", item.ID)
	}
	model, _ = press(t, model, "space")
	model, cmd := press(t, model, "l")
	if cmd != nil {
		t.Error("rejected move should not persist")
	}
	if status := statusOf(t, model, "t2"); status != task.StatusTodo {
		t.Errorf("t2 status = %s, want todo", status)
	}
	if code := latestCode(t, model); code != board.CodeDatesRequired {
		t.Errorf("notice code = %q, want %q", code, board.CodeDatesRequired)
	}
}

func TestBoardMoveCommitsAndConfirms(t *testing.T) {
	fake := clock.Fake(epoch)
	memory := fixtureBackend(t, fake)
	model := loadedModel(t, memory, fake)

	model, _ = press(t, model, "2")
	model, _ = press(t, model, "space")
	if model.board.cursor.Grabbed != "t1" {
		t.Fatalf("grabbed = %q, want t1", model.board.cursor.Grabbed)
	}
	model, cmd := press(t, model, "l")
	if status := statusOf(t, model, "t1"); status != task.StatusInProgress {
		t.Fatalf("t1 status = %s, want in_progress", status)
	}
	if !model.source.Pending("t1") {
		t.Error("move should be pending until acknowledged")
	}

	model, _ = send(t, model, persistFrom(t, cmd))
	if model.source.Pending("t1") {
		t.Error("move still pending after ack")
	}
	stored, _ := memory.Tasks(context.Background())
	for _, item := range stored {
		if item.ID == "t1" && item.Status != task.StatusInProgress {
			t.Errorf("backend status = %s, want in_progress", item.Status)
		}
	}

	model, _ = press(t, model, "space")
	if model.board.cursor.Grabbed != "" {
		t.Error("space should drop the card")
	}
}

type offlineBackend struct {
	*backend.Memory
}

func (offlineBackend) PersistMove(context.Context, string, task.Status) error {
	return errors.New("connection refused")
}

func TestBoardPersistFailureRollsBack(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, offlineBackend{fixtureBackend(t, fake)}, fake)

	model, _ = press(t, model, "2")
	model, _ = press(t, model, "space")
	model, cmd := press(t, model, "l")
	model, _ = press(t, model, "enter")

	model, _ = send(t, model, persistFrom(t, cmd))
	if status := statusOf(t, model, "t1"); status != task.StatusTodo {
		t.Errorf("t1 status = %s, want todo after rollback", status)
	}
	if code := latestCode(t, model); code != "persist_failed" {
		t.Errorf("notice code = %q, want persist_failed", code)
	}
	if heat := model.heat.Heat("t1", fake.Now()); heat <= 0 {
		t.Error("rolled back card should be highlighted")
	}
}

func TestEscapeReturnsGrabbedCard(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "2")
	model, _ = press(t, model, "space")
	model, _ = press(t, model, "l")
	model, cmd := press(t, model, "esc")
	if cmd == nil {
		t.Fatal("esc should request the move back")
	}
	if status := statusOf(t, model, "t1"); status != task.StatusTodo {
		t.Errorf("t1 status = %s, want todo", status)
	}
	if model.board.cursor.Grabbed != "" {
		t.Error("esc should release the card")
	}
}

func TestMoveDropdown(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "j")
	model, _ = press(t, model, "m")
	if model.dropdown == nil {
		t.Fatal("m should open the move dropdown")
	}
	if option, _ := model.dropdown.Selected(); option.Value != string(task.StatusDone) {
		t.Errorf("dropdown starts on %q, want done", option.Value)
	}
	if !strings.Contains(model.View(), "Review") {
		t.Error("dropdown not drawn")
	}
	model, _ = press(t, model, "k")
	model, cmd := press(t, model, "enter")
	if model.dropdown != nil {
		t.Error("enter should close the dropdown")
	}
	if cmd == nil {
		t.Fatal("move returned no command")
	}
	if status := statusOf(t, model, "t4"); status != task.StatusReview {
		t.Errorf("t4 status = %s, want review", status)
	}
}

func TestPriorityDropdownUpdatesTask(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "j")
	model, _ = press(t, model, "P")
	model, _ = press(t, model, "j")
	model, cmd := press(t, model, "enter")
	if cmd == nil {
		t.Fatal("priority change returned no command")
	}
	model, _ = send(t, model, cmd())
	item, _ := model.source.Get("t4")
	if item.Priority != task.PriorityMedium {
		t.Errorf("t4 priority = %s, want medium", item.Priority)
	}
}

func TestCreateFormShowsFieldErrors(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "n")
	if model.form == nil {
		t.Fatal("n should open the form")
	}
	model, cmd := press(t, model, "ctrl+s")
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	model, _ = send(t, model, cmd())
	if model.form == nil {
		t.Fatal("form closed on validation failure")
	}
	if message := model.form.errors.Field("title"); message == "" {
		t.Fatalf("form errors = %v, want title", model.form.errors)
	}
	if !strings.Contains(model.View(), "title is required") {
		t.Error("title error not rendered under the field")
	}

	model = typeText(t, model, "Book venue")
	model, cmd = press(t, model, "ctrl+s")
	model, _ = send(t, model, cmd())
	if model.form != nil {
		t.Fatalf("form still open: %v", model.form.errors)
	}
	if model.source.Len() != 5 {
		t.Errorf("board holds %d tasks, want 5", model.source.Len())
	}
	if code := latestCode(t, model); code != "created" {
		t.Errorf("notice code = %q, want created", code)
	}
}

func TestFormEscapeCancels(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "n")
	model = typeText(t, model, "draft")
	model, _ = press(t, model, "esc")
	if model.form != nil {
		t.Error("esc should close the form")
	}
	if model.source.Len() != 4 {
		t.Errorf("cancelled form changed the board: %d tasks", model.source.Len())
	}
}

func TestMemberActivationSearchesTasks(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "3")
	model, _ = press(t, model, "j")
	model, _ = press(t, model, "enter")
	if model.screen != ScreenTasks {
		t.Fatalf("screen = %s, want tasks", model.screen)
	}
	if model.tasks.spec.SearchTerm != "Budi" {
		t.Errorf("search term = %q, want Budi", model.tasks.spec.SearchTerm)
	}
}

func TestRefreshReportsChanges(t *testing.T) {
	fake := clock.Fake(epoch)
	memory := fixtureBackend(t, fake)
	model := loadedModel(t, memory, fake)

	if _, err := memory.CreateTask(context.Background(), backend.TaskForm{Title: "Order chairs"}); err != nil {
		t.Fatal(err)
	}
	model, cmd := press(t, model, "r")
	model, _ = send(t, model, cmd())
	notice, ok := model.bus.Latest()
	if !ok || notice.Message != "Refreshed: 1 added, 0 changed, 0 removed." {
		t.Errorf("notice = %+v", notice)
	}
	if model.source.Len() != 5 {
		t.Errorf("board holds %d tasks, want 5", model.source.Len())
	}
}

func TestCalendarNavigation(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "4")
	if got := model.calendar.frame.Count(); got != 2 {
		t.Errorf("May 2024 has %d due tasks, want 2", got)
	}
	if got := model.calendar.frame.Unscheduled; got != 1 {
		t.Errorf("unscheduled = %d, want 1", got)
	}
	model, _ = press(t, model, "l")
	if model.calendar.month != time.June {
		t.Errorf("month = %s, want June", model.calendar.month)
	}
	model, _ = press(t, model, "t")
	if model.calendar.month != time.May || model.calendar.year != 2024 {
		t.Errorf("today jumped to %s %d", model.calendar.month, model.calendar.year)
	}
}

func TestNoticesExpire(t *testing.T) {
	fake := clock.Fake(epoch)
	model := loadedModel(t, fixtureBackend(t, fake), fake)

	model, _ = press(t, model, "2")
	model, _ = press(t, model, "j")
	model, _ = press(t, model, "space")
	model, _ = press(t, model, "l")
	if len(model.bus.Active()) == 0 {
		t.Fatal("expected a rejection notice")
	}
	fake.Advance(5 * time.Second)
	model, _ = send(t, model, noticeMsg{})
	if active := model.bus.Active(); len(active) != 0 {
		t.Errorf("notices after expiry = %v", active)
	}
}
