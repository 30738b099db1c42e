// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings shared by every screen. Bindings are
// context-sensitive: Left/Right move between board columns, between
// calendar months, or carry a grabbed card.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Screen switching.
	ScreenTasks    key.Binding
	ScreenBoard    key.Binding
	ScreenMembers  key.Binding
	ScreenCalendar key.Binding

	// Filtering and sorting.
	Search         key.Binding
	StatusFilter   key.Binding
	PriorityFilter key.Binding
	SortKey        key.Binding
	SortDirection  key.Binding
	ClearFilters   key.Binding

	Activate     key.Binding // Open the detail pane, or drop a grabbed card.
	Back         key.Binding // Close the detail pane, cancel a grab or form.
	Grab         key.Binding // Pick up or drop the focused board card.
	MoveTo       key.Binding // Open the status dropdown for the focused task.
	Reprioritize key.Binding
	Today        key.Binding

	// Mutations.
	New     key.Binding
	Delete  key.Binding
	Refresh key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set: vim-style letters
// alongside arrows and page keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("PgUp", "prev page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("PgDn", "next page"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "first page"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "last page"),
	),
	ScreenTasks: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "tasks"),
	),
	ScreenBoard: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "board"),
	),
	ScreenMembers: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "members"),
	),
	ScreenCalendar: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "calendar"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	StatusFilter: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	PriorityFilter: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "priority"),
	),
	SortKey: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sort"),
	),
	SortDirection: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "reverse"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear filters"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "grab/drop"),
	),
	MoveTo: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move to"),
	),
	Reprioritize: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "set priority"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new task"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
