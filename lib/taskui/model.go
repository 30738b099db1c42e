// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Galih066/lara-task/lib/backend"
	"github.com/Galih066/lara-task/lib/board"
	"github.com/Galih066/lara-task/lib/clock"
	"github.com/Galih066/lara-task/lib/collection"
	"github.com/Galih066/lara-task/lib/config"
	"github.com/Galih066/lara-task/lib/dataset"
	"github.com/Galih066/lara-task/lib/notify"
	"github.com/Galih066/lara-task/lib/schema/task"
	"github.com/Galih066/lara-task/lib/tui"
	"github.com/Galih066/lara-task/lib/view"
)

// Screen identifies one of the top-level views.
type Screen int

const (
	ScreenTasks Screen = iota
	ScreenBoard
	ScreenMembers
	ScreenCalendar
)

var screenNames = []string{"tasks", "board", "members", "calendar"}

func (screen Screen) String() string {
	if screen < 0 || int(screen) >= len(screenNames) {
		return fmt.Sprintf("Screen(%d)", int(screen))
	}
	return screenNames[screen]
}

// ParseScreen maps a command name to its screen.
func ParseScreen(name string) (Screen, error) {
	for index, candidate := range screenNames {
		if strings.EqualFold(name, candidate) {
			return Screen(index), nil
		}
	}
	return 0, fmt.Errorf("unknown screen %q (expected one of %s)", name, strings.Join(screenNames, ", "))
}

// Options configures a Model. Backend is required; everything else has
// a usable zero value.
type Options struct {
	Backend backend.Backend

	// Bus receives board and log notices. A nil bus gets a private one
	// on Clock.
	Bus    *notify.Bus
	Clock  clock.Clock
	Logger *slog.Logger

	Screen        Screen
	PageSize      int
	SortKey       string
	SortDirection collection.Direction
	SearchMode    string

	// Timeout bounds every backend call. Zero means no deadline.
	Timeout time.Duration

	// Initiator is the member ID recorded on tasks created from the
	// form.
	Initiator string
}

// Messages delivered to Update by commands.
type (
	loadedMsg struct {
		tasks   []task.Task
		members []task.Member
		err     error
	}
	ackMsg     struct{ ack board.Ack }
	deletedMsg struct {
		taskID string
		err    error
	}
	updatedMsg struct {
		task task.Task
		err  error
	}
	noticeMsg   struct{}
	heatTickMsg struct{}
)

// Model is the bubbletea model for the task board. The working set
// lives in a board.Board; every screen is rebuilt from it after each
// message.
type Model struct {
	backend   backend.Backend
	bus       *notify.Bus
	clock     clock.Clock
	logger    *slog.Logger
	theme     tui.Theme
	keys      KeyMap
	timeout   time.Duration
	initiator string

	screen        Screen
	width, height int
	ready         bool
	loading       bool
	loaded        bool
	loadErr       error

	source   *board.Board
	members  []task.Member
	snapshot []task.Task

	tasks    *listPane[task.Task]
	people   *listPane[task.Member]
	board    *boardPane
	calendar *calendarPane
	detail   *detailPane
	form     *formModel
	dropdown *tui.DropdownOverlay
	heat     *tui.HeatTracker

	tickRunning bool
}

// NewModel builds a model. Call Init (or run it in a tea.Program) to
// fetch the working set.
func NewModel(options Options) Model {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.Bus == nil {
		options.Bus = notify.NewBus(options.Clock, 0)
	}
	if options.SortDirection == "" {
		options.SortDirection = collection.Ascending
	}

	matcher := tui.MatcherFor(options.SearchMode)
	taskEngine := view.TaskEngine(matcher)
	if !taskEngine.HasSortKey(options.SortKey) {
		options.SortKey = view.SortDueDate
	}
	tasks := newListPane(taskEngine, collection.Spec{
		SortKey:       options.SortKey,
		SortDirection: options.SortDirection,
	}, options.PageSize)
	tasks.sortKeys = taskEngine.SortKeys()
	tasks.statuses = stringsOf(task.Statuses)
	tasks.priorities = stringsOf(task.Priorities)
	tasks.fuzzy = options.SearchMode == config.SearchFuzzy
	tasks.columns = taskColumns()

	memberEngine := view.MemberEngine(matcher)
	people := newListPane(memberEngine, collection.Spec{
		SortKey:       view.SortName,
		SortDirection: collection.Ascending,
	}, options.PageSize)
	people.sortKeys = memberEngine.SortKeys()
	people.statuses = stringsOf([]task.MemberStatus{task.MemberActive, task.MemberInactive})
	people.fuzzy = tasks.fuzzy
	people.columns = memberColumns()

	return Model{
		backend:   options.Backend,
		bus:       options.Bus,
		clock:     options.Clock,
		logger:    options.Logger,
		theme:     tui.DefaultTheme,
		keys:      DefaultKeyMap,
		timeout:   options.Timeout,
		initiator: options.Initiator,
		screen:    options.Screen,
		loading:   true,
		source:    board.New(nil, board.WithNotifier(options.Bus), board.WithLogger(options.Logger)),
		tasks:     tasks,
		people:    people,
		board:     &boardPane{},
		calendar:  newCalendarPane(options.Clock.Now()),
		detail:    &detailPane{},
		heat:      tui.NewHeatTracker(),
	}
}

func stringsOf[V ~string](values []V) []string {
	result := make([]string, len(values))
	for index, value := range values {
		result[index] = string(value)
	}
	return result
}

func taskColumns() []column[task.Task] {
	return []column[task.Task]{
		{title: "Title", sortKey: view.SortTitle, value: func(item task.Task) string { return item.Title }},
		{
			title: "Status", width: 12, sortKey: view.SortStatus,
			value: func(item task.Task) string { return item.Status.Label() },
			color: func(item task.Task) lipgloss.Color { return tui.DefaultTheme.StatusColor(item.Status) },
		},
		{
			title: "Priority", width: 9, sortKey: view.SortPriority,
			value: func(item task.Task) string { return string(item.Priority) },
			color: func(item task.Task) lipgloss.Color { return tui.DefaultTheme.PriorityColor(item.Priority) },
		},
		{title: "Due", width: 11, sortKey: view.SortDueDate, value: func(item task.Task) string { return task.FormatDate(item.DueDate) }},
		{title: "Assignees", width: 20, value: func(item task.Task) string { return strings.Join(item.AssigneeNames(), ", ") }},
	}
}

func memberColumns() []column[task.Member] {
	return []column[task.Member]{
		{title: "Name", sortKey: view.SortName, value: func(member task.Member) string { return member.Name }},
		{title: "Email", width: 26, sortKey: view.SortEmail, value: func(member task.Member) string { return member.Email }},
		{title: "Role", width: 14, sortKey: view.SortRole, value: func(member task.Member) string { return member.Role }},
		{title: "Status", width: 9, sortKey: view.SortMemberStatus, value: func(member task.Member) string { return string(member.Status) }},
		{title: "Joined", width: 11, sortKey: view.SortJoinDate, value: func(member task.Member) string { return task.FormatDate(member.JoinDate) }},
	}
}

// Init implements tea.Model: fetch the working set and start listening
// for notice changes.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.fetch(), listenForNotices(model.bus.Changes()))
}

// listenForNotices blocks until the bus changes, then wakes Update so
// expired notices disappear without a keypress.
func listenForNotices(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return noticeMsg{}
	}
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}

// withTimeout returns the context factory for backend calls.
func (model *Model) withTimeout() timeoutFunc {
	timeout := model.timeout
	return func() (context.Context, context.CancelFunc) {
		if timeout <= 0 {
			return context.WithCancel(context.Background())
		}
		return context.WithTimeout(context.Background(), timeout)
	}
}

func (model *Model) fetch() tea.Cmd {
	source, timeout := model.backend, model.withTimeout()
	return func() tea.Msg {
		ctx, cancel := timeout()
		defer cancel()
		tasks, err := source.Tasks(ctx)
		if err != nil {
			return loadedMsg{err: fmt.Errorf("loading tasks: %w", err)}
		}
		members, err := source.Members(ctx)
		if err != nil {
			return loadedMsg{err: fmt.Errorf("loading members: %w", err)}
		}
		return loadedMsg{tasks: tasks, members: members}
	}
}

// persist sends a committed move to the backend off the update loop.
func (model *Model) persist(move board.PendingMove) tea.Cmd {
	source, timeout := model.backend, model.withTimeout()
	return func() tea.Msg {
		ctx, cancel := timeout()
		defer cancel()
		return ackMsg{ack: board.Persist(ctx, source, move)}
	}
}

func (model *Model) remove(taskID string) tea.Cmd {
	source, timeout := model.backend, model.withTimeout()
	return func() tea.Msg {
		ctx, cancel := timeout()
		defer cancel()
		return deletedMsg{taskID: taskID, err: source.DeleteTask(ctx, taskID)}
	}
}

func (model *Model) reprioritize(taskID string, priority task.Priority) tea.Cmd {
	source, timeout := model.backend, model.withTimeout()
	value := string(priority)
	return func() tea.Msg {
		ctx, cancel := timeout()
		defer cancel()
		updated, err := source.UpdateTask(ctx, taskID, backend.TaskPatch{Priority: &value})
		return updatedMsg{task: updated, err: err}
	}
}

func (model *Model) openDetail(taskID string) {
	model.detail.open(taskID)
}

// notice posts to the bus.
func (model *Model) notice(level slog.Level, code, message string) {
	model.bus.Post(notify.Notice{Level: level, Code: code, Message: message})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case tea.KeyMsg:
		cmd = model.handleKey(message)

	case loadedMsg:
		model.handleLoaded(message)

	case ackMsg:
		cmd = model.handleAck(message.ack)

	case createdMsg:
		model.handleCreated(message)

	case updatedMsg:
		if message.err != nil {
			model.notice(slog.LevelError, "update_failed", "Update failed: "+errorText(message.err))
			break
		}
		model.source.Put(message.task)

	case deletedMsg:
		model.handleDeleted(message)

	case noticeMsg:
		cmd = listenForNotices(model.bus.Changes())

	case heatTickMsg:
		if model.heat.HasHot(model.clock.Now()) {
			cmd = scheduleHeatTick()
		} else {
			model.tickRunning = false
		}
	}
	model.rebuild()
	return model, cmd
}

// rebuild refreshes every pane's frame from the working set.
func (model *Model) rebuild() {
	items := model.source.Items()
	model.tasks.rebuild(items)
	model.people.rebuild(model.members)
	model.board.rebuild(model.source, model.boardMatch())
	model.calendar.frame = view.BuildCalendar(model.tasks.engine, items, model.tasks.spec,
		model.calendar.year, model.calendar.month, model.clock.Now())
	if model.detail.active() {
		if _, ok := model.source.Get(model.detail.taskID); !ok {
			model.detail.close()
		}
	}
}

// boardMatch applies the task list's search and priority filter to
// the board. The status filter is dropped: columns are the statuses.
func (model *Model) boardMatch() func(task.Task) bool {
	spec := model.tasks.spec
	spec.StatusFilter = collection.All
	engine := model.tasks.engine
	return func(item task.Task) bool { return engine.Matches(item, spec) }
}

func (model *Model) handleLoaded(message loadedMsg) {
	model.loading = false
	if message.err != nil {
		model.loadErr = message.err
		model.logger.Debug("fetch failed", "error", message.err)
		model.notice(slog.LevelError, "fetch_failed", errorText(message.err))
		return
	}
	model.loadErr = nil
	dataset.ResolveAssignees(message.tasks, message.members)
	if model.loaded {
		changes := dataset.Diff(model.snapshot, message.tasks)
		text := "Up to date."
		if !changes.Empty() {
			text = fmt.Sprintf("Refreshed: %d added, %d changed, %d removed.",
				len(changes.Added), len(changes.Changed), len(changes.Removed))
		}
		model.notice(slog.LevelInfo, "refreshed", text)
	}
	model.loaded = true
	model.snapshot = message.tasks
	model.members = message.members
	model.source.Replace(message.tasks)
}

func (model *Model) handleAck(ack board.Ack) tea.Cmd {
	resolution := model.source.Resolve(ack)
	model.logger.Debug("move resolved", "task", ack.Move.TaskID, "status", ack.Move.Status, "resolution", resolution)
	if resolution != board.ResolutionRolledBack {
		return nil
	}
	model.heat.Ignite(ack.Move.TaskID, tui.HeatRollback, model.clock.Now())
	return model.startHeatTick()
}

func (model *Model) startHeatTick() tea.Cmd {
	if model.tickRunning {
		return nil
	}
	model.tickRunning = true
	return scheduleHeatTick()
}

func (model *Model) handleCreated(message createdMsg) {
	if model.form == nil {
		return
	}
	model.form.submitting = false
	if message.err != nil {
		if fields, ok := backend.AsFieldErrors(message.err); ok {
			model.form.errors = fields
			return
		}
		model.notice(slog.LevelError, "create_failed", "Create failed: "+errorText(message.err))
		return
	}
	model.form = nil
	dataset.ResolveAssignees([]task.Task{message.task}, model.members)
	model.source.Put(message.task)
	model.notice(slog.LevelInfo, "created", fmt.Sprintf("Created “%s”.", message.task.Title))
}

func (model *Model) handleDeleted(message deletedMsg) {
	if message.err != nil && !errors.Is(message.err, backend.ErrNotFound) {
		model.notice(slog.LevelError, "delete_failed", "Delete failed: "+errorText(message.err))
		return
	}
	item, _ := model.source.Get(message.taskID)
	if model.source.Remove(message.taskID) {
		model.notice(slog.LevelInfo, "deleted", fmt.Sprintf("Deleted “%s”.", item.Title))
	}
}

func errorText(err error) string {
	var serviceError *backend.ServiceError
	if errors.As(err, &serviceError) {
		return serviceError.Message
	}
	return err.Error()
}

// searchingPane reports whether the current screen's list pane is
// editing its search term. The board and calendar share the task
// list's spec.
func (model *Model) searchingPane() (searching bool, handle func(tea.KeyMsg) tea.Cmd) {
	if model.screen == ScreenMembers {
		return model.people.searching, model.people.handleSearchKey
	}
	return model.tasks.searching, model.tasks.handleSearchKey
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	if model.form != nil {
		return model.handleFormKey(message)
	}
	if model.dropdown != nil {
		return model.handleDropdownKey(message)
	}
	if searching, handle := model.searchingPane(); searching {
		return handle(message)
	}

	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		return tea.Quit
	case key.Matches(message, keys.ScreenTasks):
		model.switchScreen(ScreenTasks)
		return nil
	case key.Matches(message, keys.ScreenBoard):
		model.switchScreen(ScreenBoard)
		return nil
	case key.Matches(message, keys.ScreenMembers):
		model.switchScreen(ScreenMembers)
		return nil
	case key.Matches(message, keys.ScreenCalendar):
		model.switchScreen(ScreenCalendar)
		return nil
	case key.Matches(message, keys.Refresh):
		model.loading = true
		return model.fetch()
	case key.Matches(message, keys.New) && model.screen != ScreenMembers:
		model.form = newFormModel()
		return nil
	}

	if model.detail.active() {
		if cmd, handled := model.handleDetailKey(message); handled {
			return cmd
		}
	}

	switch model.screen {
	case ScreenTasks:
		return model.handleTasksKey(message)
	case ScreenBoard:
		return model.handleBoardScreenKey(message)
	case ScreenMembers:
		return model.handleMembersKey(message)
	case ScreenCalendar:
		if model.calendar.handleKey(message, keys, model.clock.Now()) {
			return nil
		}
		model.tasks.handleFilterKey(message, keys)
	}
	return nil
}

func (model *Model) switchScreen(screen Screen) {
	model.screen = screen
	model.detail.close()
	model.board.cursor.Grabbed = ""
}

func (model *Model) handleDetailKey(message tea.KeyMsg) (tea.Cmd, bool) {
	item, ok := model.source.Get(model.detail.taskID)
	if !ok {
		model.detail.close()
		return nil, false
	}
	switch {
	case key.Matches(message, model.keys.Back):
		model.detail.close()
	case key.Matches(message, model.keys.Delete):
		return model.remove(item.ID), true
	case key.Matches(message, model.keys.MoveTo):
		model.openMoveDropdown(item)
	case key.Matches(message, model.keys.Reprioritize):
		model.openPriorityDropdown(item)
	case model.detail.handleKey(message, model.keys, model.contentHeight()):
	default:
		return nil, false
	}
	return nil, true
}

func (model *Model) handleTasksKey(message tea.KeyMsg) tea.Cmd {
	keys := model.keys
	switch {
	case key.Matches(message, keys.Delete):
		if item, ok := model.tasks.focused(); ok {
			return model.remove(item.ID)
		}
	case key.Matches(message, keys.MoveTo):
		if item, ok := model.tasks.focused(); ok {
			model.openMoveDropdown(item)
		}
	case key.Matches(message, keys.Reprioritize):
		if item, ok := model.tasks.focused(); ok {
			model.openPriorityDropdown(item)
		}
	default:
		model.tasks.handleKey(message, keys)
		if item, ok := model.tasks.takeActivated(); ok {
			model.openDetail(item.ID)
		}
	}
	return nil
}

func (model *Model) handleBoardScreenKey(message tea.KeyMsg) tea.Cmd {
	if handled, cmd := model.handleBoardKey(message); handled {
		return cmd
	}
	keys := model.keys
	switch {
	case key.Matches(message, keys.Delete):
		if item, ok := model.board.focused(); ok {
			return model.remove(item.ID)
		}
	case key.Matches(message, keys.MoveTo):
		if item, ok := model.board.focused(); ok {
			model.openMoveDropdown(item)
		}
	case key.Matches(message, keys.Reprioritize):
		if item, ok := model.board.focused(); ok {
			model.openPriorityDropdown(item)
		}
	default:
		model.tasks.handleFilterKey(message, keys)
	}
	return nil
}

// handleMembersKey navigates the member list. Enter shows the member's
// tasks on the task screen.
func (model *Model) handleMembersKey(message tea.KeyMsg) tea.Cmd {
	model.people.handleKey(message, model.keys)
	if member, ok := model.people.takeActivated(); ok {
		next := model.tasks.spec
		next.SearchTerm = member.Name
		model.tasks.setSpec(next)
		model.tasks.search.SetValue(member.Name)
		model.switchScreen(ScreenTasks)
	}
	return nil
}

// handleFilterKey applies only the search, filter, and sort keys. The
// board and calendar use it to edit the shared task spec without
// touching the list's selection.
func (pane *listPane[T]) handleFilterKey(message tea.KeyMsg, keys KeyMap) bool {
	if !key.Matches(message, keys.Search, keys.StatusFilter, keys.PriorityFilter,
		keys.SortKey, keys.SortDirection, keys.ClearFilters) {
		return false
	}
	return pane.handleKey(message, keys)
}

func (model *Model) handleFormKey(message tea.KeyMsg) tea.Cmd {
	cmd, submit, cancel := model.form.update(message)
	switch {
	case cancel:
		model.form = nil
		return nil
	case submit:
		model.form.submitting = true
		model.form.errors = nil
		return createCmd(model.backend, model.withTimeout(),
			model.form.payload(model.initiator), splitList(model.form.value("attachments")))
	}
	return cmd
}

func (model *Model) openMoveDropdown(item task.Task) {
	options := make([]tui.DropdownOption, len(task.Statuses))
	for index, status := range task.Statuses {
		options[index] = tui.DropdownOption{Label: status.Label(), Value: string(status)}
	}
	model.dropdown = tui.NewDropdown("move", options, string(item.Status))
	model.dropdown.ItemID = item.ID
	model.anchorDropdown()
}

func (model *Model) openPriorityDropdown(item task.Task) {
	options := make([]tui.DropdownOption, len(task.Priorities))
	for index, priority := range task.Priorities {
		options[index] = tui.DropdownOption{Label: string(priority), Value: string(priority)}
	}
	model.dropdown = tui.NewDropdown("priority", options, string(item.Priority))
	model.dropdown.ItemID = item.ID
	model.anchorDropdown()
}

// anchorDropdown centers the dropdown over the content area.
func (model *Model) anchorDropdown() {
	model.dropdown.AnchorX = max((model.width-model.dropdown.Width())/2, 0)
	model.dropdown.AnchorY = max((model.height-len(model.dropdown.Options)-2)/2, 2)
}

func (model *Model) handleDropdownKey(message tea.KeyMsg) tea.Cmd {
	dropdown := model.dropdown
	switch {
	case key.Matches(message, model.keys.Up):
		dropdown.MoveUp()
	case key.Matches(message, model.keys.Down):
		dropdown.MoveDown()
	case key.Matches(message, model.keys.Back):
		model.dropdown = nil
	case key.Matches(message, model.keys.Activate):
		model.dropdown = nil
		option, ok := dropdown.Selected()
		if !ok {
			return nil
		}
		item, exists := model.source.Get(dropdown.ItemID)
		if !exists {
			return nil
		}
		switch dropdown.Field {
		case "move":
			return model.requestMove(item, task.Status(option.Value))
		case "priority":
			if task.Priority(option.Value) != item.Priority {
				return model.reprioritize(item.ID, task.Priority(option.Value))
			}
		}
	}
	return nil
}

// contentHeight is the number of lines between the header and the
// footer.
func (model Model) contentHeight() int {
	return max(model.height-2-len(model.footerLines()), 3)
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}
	footer := model.footerLines()
	height := max(model.height-2-len(footer), 3)

	sections := []string{model.renderHeader(), model.renderFilterBar()}
	if model.form != nil {
		sections = append(sections, lipgloss.NewStyle().Height(height).Render(model.form.render(model.theme, model.width)))
	} else {
		sections = append(sections, lipgloss.NewStyle().Height(height).MaxHeight(height).Render(model.renderContent(height)))
	}
	sections = append(sections, footer...)
	output := strings.Join(sections, "\n")

	if model.dropdown != nil {
		output = tui.SpliceOverlay(output, model.dropdown.Render(model.theme),
			model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	return output
}

func (model Model) renderContent(height int) string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	switch {
	case model.loadErr != nil && !model.loaded:
		return lipgloss.NewStyle().Foreground(model.theme.ErrorText).
			Render("Could not load tasks: " + errorText(model.loadErr) + "\nPress r to retry.")
	case model.loading && !model.loaded:
		return faint.Render("Loading tasks…")
	}

	var main string
	width := model.width
	detailItem, showDetail := model.source.Get(model.detail.taskID)
	showDetail = showDetail && model.detail.active()
	if showDetail {
		width = model.width * 11 / 20
	}

	switch model.screen {
	case ScreenTasks:
		main = model.tasks.render(model.theme, width, height-2, "No tasks yet. Press n to create one.")
	case ScreenBoard:
		main = model.board.render(&model, width, height)
	case ScreenMembers:
		main = model.people.render(model.theme, width, height-2, "No members.")
	case ScreenCalendar:
		main = model.calendar.render(model.theme, width, height)
	}
	if !showDetail {
		return main
	}

	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).
		Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
	detail := model.detail.render(model.theme, detailItem, model.width-width-2, height)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(width).MaxHeight(height).Render(main), divider, " "+detail)
}

// renderHeader draws the screen tabs embedded in a rule with counts on
// the right.
func (model Model) renderHeader() string {
	rule := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	active := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	inactive := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := rule.Render("───")
	for index, name := range screenNames {
		label := fmt.Sprintf("%d:%s", index+1, strings.ToUpper(name[:1])+name[1:])
		style := inactive
		if Screen(index) == model.screen {
			style = active
		}
		left += " " + style.Render(label) + " " + rule.Render("──")
	}

	counts := model.source.Counts()
	stats := fmt.Sprintf("%d tasks  %d todo  %d active  %d done",
		model.source.Len(), counts[task.StatusTodo],
		counts[task.StatusInProgress]+counts[task.StatusReview], counts[task.StatusDone])
	right := " " + inactive.Render(stats) + " " + rule.Render("─")

	fill := max(model.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return ansi.Truncate(left+rule.Render(strings.Repeat("─", fill))+right, model.width, "")
}

func (model Model) renderFilterBar() string {
	if model.screen == ScreenMembers {
		return model.people.filterBar(model.theme, model.width)
	}
	return model.tasks.filterBar(model.theme, model.width)
}

// footerLines is the active notices, newest last, followed by the help
// line.
func (model Model) footerLines() []string {
	var lines []string
	for _, notice := range model.bus.Active() {
		style := lipgloss.NewStyle().Foreground(model.theme.NoticeColor(notice.Level))
		lines = append(lines, ansi.Truncate(style.Render(notice.Message), model.width, "…"))
	}
	help := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	return append(lines, ansi.Truncate(help.Render(model.helpText()), model.width, "…"))
}

func (model Model) helpText() string {
	switch {
	case model.form != nil:
		return "Tab next · Ctrl+S create · Esc cancel"
	case model.dropdown != nil:
		return "↑/↓ choose · Enter apply · Esc close"
	case model.detail.active():
		return "j/k scroll · m move · P priority · x delete · Esc close"
	}
	switch model.screen {
	case ScreenBoard:
		if model.board.cursor.Grabbed != "" {
			return "h/l carry · Space/Enter drop · Esc cancel"
		}
		return "h/l column · j/k card · Space grab · m move · Enter open · / search · n new · q quit"
	case ScreenMembers:
		return "j/k move · Enter show tasks · / search · s status · o sort · O reverse · q quit"
	case ScreenCalendar:
		return "h/l month · t today · / search · p priority · s status · q quit"
	}
	return "j/k move · Enter open · / search · s status · p priority · o sort · O reverse · n new · x delete · q quit"
}
