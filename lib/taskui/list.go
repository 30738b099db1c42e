// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Galih066/lara-task/lib/collection"
	"github.com/Galih066/lara-task/lib/selection"
	"github.com/Galih066/lara-task/lib/tui"
	"github.com/Galih066/lara-task/lib/view"
)

// column describes one table column of a list pane.
type column[T any] struct {
	title string
	width int

	// sortKey marks the column that shows the sort indicator.
	sortKey string
	value   func(T) string
	color   func(T) lipgloss.Color
}

// listPane is the filter bar, table, and pager for one record type.
// It owns the view spec and the selection controller; the model feeds
// it records and renders the frame it builds.
type listPane[T any] struct {
	engine     *collection.Engine[T]
	spec       collection.Spec
	controller *selection.Controller

	sortKeys   []string
	statuses   []string
	priorities []string
	columns    []column[T]

	// fuzzy highlights matched runes in the first column.
	fuzzy bool

	search    textinput.Model
	searching bool

	// activated holds the record Enter was pressed on until the model
	// takes it.
	activated *T

	list     view.List[T]
	filtered []T
}

func newListPane[T any](engine *collection.Engine[T], spec collection.Spec, pageSize int) *listPane[T] {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 120

	pane := &listPane[T]{
		engine:     engine,
		spec:       spec,
		controller: selection.New(pageSize),
		search:     search,
	}
	pane.controller.OnActivate(func(index int) {
		if index < len(pane.filtered) {
			item := pane.filtered[index]
			pane.activated = &item
		}
	})
	return pane
}

// rebuild runs the engine over items and refreshes the frame.
func (pane *listPane[T]) rebuild(items []T) {
	pane.list, pane.filtered = view.BuildList(pane.engine, items, pane.spec, pane.controller)
}

// setSpec replaces the spec. Predicate changes go back to page one;
// a sort change keeps the page.
func (pane *listPane[T]) setSpec(next collection.Spec) {
	if next.FilterChanged(pane.spec) {
		pane.controller.Reset()
	}
	pane.spec = next
}

// takeActivated returns and clears the record activated since the
// last call.
func (pane *listPane[T]) takeActivated() (T, bool) {
	if pane.activated == nil {
		var zero T
		return zero, false
	}
	item := *pane.activated
	pane.activated = nil
	return item, true
}

func (pane *listPane[T]) focused() (T, bool) {
	row, ok := pane.list.Focused()
	return row.Item, ok
}

// handleKey applies navigation, filter, and sort keys. It reports
// whether the key was consumed.
func (pane *listPane[T]) handleKey(message tea.KeyMsg, keys KeyMap) bool {
	next := pane.spec
	switch {
	case key.Matches(message, keys.Up):
		pane.controller.Previous()
	case key.Matches(message, keys.Down):
		pane.controller.Next()
	case key.Matches(message, keys.PageUp, keys.Left):
		pane.controller.PreviousPage()
	case key.Matches(message, keys.PageDown, keys.Right):
		pane.controller.NextPage()
	case key.Matches(message, keys.Home):
		pane.controller.First()
	case key.Matches(message, keys.End):
		pane.controller.Last()
	case key.Matches(message, keys.Activate):
		pane.controller.Activate()
	case key.Matches(message, keys.Search):
		pane.searching = true
		pane.search.SetValue(pane.spec.SearchTerm)
		pane.search.CursorEnd()
		pane.search.Focus()
	case key.Matches(message, keys.StatusFilter) && len(pane.statuses) > 0:
		next.StatusFilter = view.NextFilter(pane.statuses, next.StatusFilter)
		pane.setSpec(next)
	case key.Matches(message, keys.PriorityFilter) && len(pane.priorities) > 0:
		next.PriorityFilter = view.NextFilter(pane.priorities, next.PriorityFilter)
		pane.setSpec(next)
	case key.Matches(message, keys.SortKey):
		next.SortKey = view.NextSortKey(pane.sortKeys, next.SortKey)
		pane.setSpec(next)
	case key.Matches(message, keys.SortDirection):
		next.SortDirection = next.SortDirection.Toggle()
		pane.setSpec(next)
	case key.Matches(message, keys.ClearFilters):
		next.ClearFilters()
		pane.setSpec(next)
	default:
		return false
	}
	return true
}

// handleSearchKey edits the search term live. Enter keeps the term,
// Esc clears it.
func (pane *listPane[T]) handleSearchKey(message tea.KeyMsg) tea.Cmd {
	switch message.Type {
	case tea.KeyEnter:
		pane.searching = false
		pane.search.Blur()
		return nil
	case tea.KeyEsc:
		pane.searching = false
		pane.search.Blur()
		pane.search.SetValue("")
		next := pane.spec
		next.SearchTerm = ""
		pane.setSpec(next)
		return nil
	}
	var cmd tea.Cmd
	pane.search, cmd = pane.search.Update(message)
	next := pane.spec
	next.SearchTerm = strings.TrimSpace(pane.search.Value())
	pane.setSpec(next)
	return cmd
}

// filterBar is the line above the table: the search box while typing,
// otherwise the active predicates and sort order.
func (pane *listPane[T]) filterBar(theme tui.Theme, width int) string {
	if pane.searching {
		pane.search.Width = max(width-4, 10)
		return pane.search.View()
	}
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	active := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	var parts []string
	if pane.spec.SearchTerm != "" {
		parts = append(parts, active.Render("/"+pane.spec.SearchTerm))
	}
	if len(pane.statuses) > 0 {
		parts = append(parts, faint.Render("status:")+filterValue(pane.spec.StatusFilter, active, faint))
	}
	if len(pane.priorities) > 0 {
		parts = append(parts, faint.Render("priority:")+filterValue(pane.spec.PriorityFilter, active, faint))
	}
	sortLabel := "none"
	if pane.spec.SortKey != "" {
		sortLabel = view.SortLabel(pane.spec.SortKey) + " " + pane.spec.SortDirection.Indicator()
	}
	parts = append(parts, faint.Render("sort:")+active.Render(sortLabel))
	return ansi.Truncate(strings.Join(parts, "  "), width, "…")
}

func filterValue(value string, active, faint lipgloss.Style) string {
	if value == "" || strings.EqualFold(value, collection.All) {
		return faint.Render(collection.All)
	}
	return active.Render(value)
}

// render draws the header, rows, and pager. height is the number of
// lines available for rows.
func (pane *listPane[T]) render(theme tui.Theme, width, height int, emptyText string) string {
	var lines []string
	header := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	widths := pane.columnWidths(width - 2)

	var headerCells []string
	for index, col := range pane.columns {
		title := col.title
		if col.sortKey != "" && col.sortKey == pane.spec.SortKey {
			title += " " + pane.spec.SortDirection.Indicator()
		}
		headerCells = append(headerCells, pad(title, widths[index]))
	}
	lines = append(lines, header.Render(strings.Join(headerCells, " ")))

	if pane.list.Empty() {
		text := emptyText
		if pane.list.Filtering {
			text = "No matches. Press c to clear filters."
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.FaintText).Render(text))
	}

	var pattern []rune
	if pane.fuzzy && pane.spec.SearchTerm != "" {
		pattern = []rune(strings.ReplaceAll(pane.spec.SearchTerm, " ", ""))
	}
	for _, row := range pane.list.Rows {
		lines = append(lines, pane.renderRow(theme, row, widths, pattern))
	}
	for len(lines) < height+1 {
		lines = append(lines, "")
	}

	body := strings.Join(lines, "\n")
	bar := tui.RenderScrollbar(theme, len(lines), pane.list.Pager.Total, len(pane.list.Rows), max(pane.list.Pager.From-1, 0), true)
	table := lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(width-1).Render(body), bar)

	pager := lipgloss.NewStyle().Foreground(theme.HelpText).Render(pane.list.Pager.Summary())
	return table + "\n" + pager
}

func (pane *listPane[T]) renderRow(theme tui.Theme, row view.Row[T], widths []int, pattern []rune) string {
	cells := make([]string, len(pane.columns))
	for index, col := range pane.columns {
		text := pad(col.value(row.Item), widths[index])
		style := lipgloss.NewStyle().Foreground(theme.NormalText)
		if col.color != nil {
			style = style.Foreground(col.color(row.Item))
		}
		if row.Focused {
			style = style.Background(theme.SelectedBackground).Bold(true)
		}
		if index == 0 && len(pattern) > 0 {
			match := tui.FuzzyMatch(text, pattern, nil)
			highlight := style.Background(theme.SearchHighlightBackground)
			cells[index] = tui.Highlight(text, match.Positions, style, highlight)
			continue
		}
		cells[index] = style.Render(text)
	}
	gap := " "
	if row.Focused {
		gap = lipgloss.NewStyle().Background(theme.SelectedBackground).Render(" ")
	}
	return strings.Join(cells, gap)
}

// columnWidths gives every column its declared width and hands the
// remainder to the first column.
func (pane *listPane[T]) columnWidths(width int) []int {
	widths := make([]int, len(pane.columns))
	fixed := len(pane.columns) - 1
	for index, col := range pane.columns {
		widths[index] = col.width
		if index > 0 {
			fixed += col.width
		}
	}
	if len(widths) > 0 {
		widths[0] = max(width-fixed, 12)
	}
	return widths
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-ansi.StringWidth(s))
}
