// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Galih066/lara-task/lib/tui"
	"github.com/Galih066/lara-task/lib/view"
)

// calendarPane shows one month of tasks on their due dates, filtered
// by the task list's spec.
type calendarPane struct {
	year  int
	month time.Month
	frame view.Calendar
}

func newCalendarPane(today time.Time) *calendarPane {
	return &calendarPane{year: today.Year(), month: today.Month()}
}

// shift moves the visible month by delta months.
func (pane *calendarPane) shift(delta int) {
	first := time.Date(pane.year, pane.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	pane.year, pane.month = first.Year(), first.Month()
}

func (pane *calendarPane) handleKey(message tea.KeyMsg, keys KeyMap, today time.Time) bool {
	switch {
	case key.Matches(message, keys.Left, keys.PageUp):
		pane.shift(-1)
	case key.Matches(message, keys.Right, keys.PageDown):
		pane.shift(1)
	case key.Matches(message, keys.Today):
		pane.year, pane.month = today.Year(), today.Month()
	default:
		return false
	}
	return true
}

func (pane *calendarPane) render(theme tui.Theme, width, height int) string {
	cellWidth := max((width-1)/7-1, 8)
	weeks := max(len(pane.frame.Weeks), 1)
	cellHeight := max((height-3)/weeks-1, 2)

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render(pane.frame.Title())
	summary := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render(fmt.Sprintf("  %d due this month · %d unscheduled", pane.frame.Count(), pane.frame.Unscheduled))

	weekdays := make([]string, 7)
	for index := range weekdays {
		weekdays[index] = pad(time.Weekday(index).String()[:3], cellWidth)
	}
	lines := []string{
		header + summary,
		lipgloss.NewStyle().Foreground(theme.FaintText).Render(strings.Join(weekdays, " ")),
	}

	for _, week := range pane.frame.Weeks {
		cells := make([]string, len(week))
		for index, day := range week {
			cells[index] = pane.renderDay(theme, day, cellWidth, cellHeight)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func (pane *calendarPane) renderDay(theme tui.Theme, day view.Day, width, height int) string {
	number := lipgloss.NewStyle().Foreground(theme.NormalText)
	switch {
	case day.Today:
		number = number.Background(theme.FocusBorder).Foreground(theme.SelectedForeground).Bold(true)
	case !day.InMonth:
		number = number.Foreground(theme.BorderColor)
	}
	lines := []string{number.Render(fmt.Sprintf("%2d", day.Date.Day()))}

	for index, item := range day.Tasks {
		if index == height-1 && len(day.Tasks) > height-1 {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.FaintText).
				Render(fmt.Sprintf("+%d more", len(day.Tasks)-index)))
			break
		}
		marker := lipgloss.NewStyle().Foreground(theme.StatusColor(item.Status)).Render("▪")
		lines = append(lines, marker+" "+ansi.Truncate(item.Title, width-2, "…"))
	}
	return lipgloss.NewStyle().Width(width + 1).Height(height + 1).Render(strings.Join(lines, "\n"))
}
