// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Galih066/lara-task/lib/schema/task"
	"github.com/Galih066/lara-task/lib/tui"
)

// detailPane shows one task with its rendered description. The body is
// re-rendered only when the task or the width changes.
type detailPane struct {
	taskID string
	offset int

	rendered      []string
	renderedFor   task.Task
	renderedWidth int
}

func (pane *detailPane) open(taskID string) {
	if pane.taskID != taskID {
		pane.offset = 0
		pane.rendered = nil
	}
	pane.taskID = taskID
}

func (pane *detailPane) close() {
	pane.taskID = ""
	pane.rendered = nil
}

func (pane *detailPane) active() bool { return pane.taskID != "" }

func (pane *detailPane) handleKey(message tea.KeyMsg, keys KeyMap, height int) bool {
	switch {
	case key.Matches(message, keys.Up):
		pane.offset--
	case key.Matches(message, keys.Down):
		pane.offset++
	case key.Matches(message, keys.PageUp):
		pane.offset -= max(height-1, 1)
	case key.Matches(message, keys.PageDown):
		pane.offset += max(height-1, 1)
	case key.Matches(message, keys.Home):
		pane.offset = 0
	case key.Matches(message, keys.End):
		pane.offset = len(pane.rendered)
	default:
		return false
	}
	return true
}

func (pane *detailPane) body(theme tui.Theme, item task.Task, width int) []string {
	if pane.rendered != nil && pane.renderedWidth == width && sameContent(pane.renderedFor, item) {
		return pane.rendered
	}
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	value := lipgloss.NewStyle().Foreground(theme.NormalText)
	row := func(label, text string) string {
		return faint.Render(fmt.Sprintf("%-11s", label)) + value.Render(text)
	}
	orNone := func(text string) string {
		if text == "" {
			return "—"
		}
		return text
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Width(width).Render(item.Title),
		"",
		row("Status", lipgloss.NewStyle().Foreground(theme.StatusColor(item.Status)).Render(item.Status.Label())),
		row("Priority", lipgloss.NewStyle().Foreground(theme.PriorityColor(item.Priority)).Render(orNone(string(item.Priority)))),
		row("Start", orNone(task.FormatDate(item.StartDate))),
		row("Due", orNone(task.FormatDate(item.DueDate))),
		row("Assignees", orNone(strings.Join(item.AssigneeNames(), ", "))),
		row("Initiator", orNone(item.Initiator.Display())),
	}
	if !item.CreatedAt.IsZero() {
		lines = append(lines, row("Created", item.CreatedAt.Format("2006-01-02 15:04")))
	}
	for index, image := range item.Images {
		label := ""
		if index == 0 {
			label = "Images"
		}
		lines = append(lines, row(label, fmt.Sprintf("%s (%s, %d KiB)", image.Name, image.Type, image.Size>>10)))
	}
	lines = append(lines, "")
	if description := tui.RenderMarkdown(item.Description, theme, width); description != "" {
		lines = append(lines, strings.Split(description, "\n")...)
	} else {
		lines = append(lines, faint.Italic(true).Render("No description."))
	}

	pane.rendered = lines
	pane.renderedFor = item
	pane.renderedWidth = width
	return lines
}

func sameContent(a, b task.Task) bool {
	return a.ID == b.ID && a.Title == b.Title && a.Description == b.Description &&
		a.Status == b.Status && a.Priority == b.Priority &&
		task.FormatDate(a.StartDate) == task.FormatDate(b.StartDate) &&
		task.FormatDate(a.DueDate) == task.FormatDate(b.DueDate) &&
		strings.Join(a.AssigneeNames(), ",") == strings.Join(b.AssigneeNames(), ",")
}

func (pane *detailPane) render(theme tui.Theme, item task.Task, width, height int) string {
	lines := pane.body(theme, item, width-2)
	visible := max(height, 1)
	pane.offset = min(max(pane.offset, 0), max(len(lines)-visible, 0))

	window := lines[pane.offset:min(pane.offset+visible, len(lines))]
	padded := make([]string, visible)
	copy(padded, window)

	bar := tui.RenderScrollbar(theme, visible, len(lines), visible, pane.offset, true)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(width-1).Render(strings.Join(padded, "\n")),
		bar,
	)
}
