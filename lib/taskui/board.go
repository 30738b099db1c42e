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

	"github.com/Galih066/lara-task/lib/board"
	"github.com/Galih066/lara-task/lib/schema/task"
	"github.com/Galih066/lara-task/lib/tui"
	"github.com/Galih066/lara-task/lib/view"
)

// boardPane is the keyboard-driven kanban board. A grabbed card is
// carried between columns with Left/Right; every step is a move
// request, so the guards run (and notify) as the card travels.
type boardPane struct {
	cursor view.BoardCursor

	// origin is the status the grabbed card started from, restored on
	// Esc.
	origin task.Status

	frame view.BoardView
}

func (pane *boardPane) rebuild(source *board.Board, match func(task.Task) bool) {
	pane.frame = view.BuildBoard(source, match, pane.cursor)
	pane.cursor = view.ClampCursor(pane.frame, pane.cursor)
	pane.frame = view.BuildBoard(source, match, pane.cursor)
}

func (pane *boardPane) focused() (task.Task, bool) {
	card, ok := pane.frame.FocusedCard()
	return card.Task, ok
}

// handleBoardKey moves the cursor or carries the grabbed card. It
// reports whether the key was consumed.
func (model *Model) handleBoardKey(message tea.KeyMsg) (bool, tea.Cmd) {
	pane := model.board
	keys := model.keys

	switch {
	case key.Matches(message, keys.Up):
		if pane.cursor.Grabbed == "" {
			pane.cursor.Row--
		}
	case key.Matches(message, keys.Down):
		if pane.cursor.Grabbed == "" {
			pane.cursor.Row++
		}
	case key.Matches(message, keys.Left):
		if pane.cursor.Grabbed != "" {
			return true, model.carry(-1)
		}
		pane.cursor.Column--
		pane.cursor.Row = 0
	case key.Matches(message, keys.Right):
		if pane.cursor.Grabbed != "" {
			return true, model.carry(1)
		}
		pane.cursor.Column++
		pane.cursor.Row = 0
	case key.Matches(message, keys.Grab):
		if pane.cursor.Grabbed != "" {
			pane.cursor.Grabbed = ""
			return true, nil
		}
		if item, ok := pane.focused(); ok {
			pane.cursor.Grabbed = item.ID
			pane.origin = item.Status
		}
	case key.Matches(message, keys.Activate):
		if pane.cursor.Grabbed != "" {
			pane.cursor.Grabbed = ""
			return true, nil
		}
		if item, ok := pane.focused(); ok {
			model.openDetail(item.ID)
		}
	case key.Matches(message, keys.Back):
		if pane.cursor.Grabbed == "" {
			return false, nil
		}
		grabbed := pane.cursor.Grabbed
		pane.cursor.Grabbed = ""
		if item, ok := model.source.Get(grabbed); ok && item.Status != pane.origin {
			return true, model.requestMove(item, pane.origin)
		}
	default:
		return false, nil
	}
	return true, nil
}

// carry requests a move of the grabbed card into the neighboring
// column.
func (model *Model) carry(delta int) tea.Cmd {
	item, ok := model.source.Get(model.board.cursor.Grabbed)
	if !ok {
		model.board.cursor.Grabbed = ""
		return nil
	}
	target, ok := board.Neighbor(item.Status, delta)
	if !ok {
		return nil
	}
	return model.requestMove(item, target)
}

// requestMove runs the board guards and, on commit, starts persisting.
func (model *Model) requestMove(item task.Task, target task.Status) tea.Cmd {
	fromIndex := model.source.Column(item.Status).IndexOf(item.ID)
	result, err := model.source.RequestMove(board.MoveRequest{
		TaskID:    item.ID,
		From:      item.Status,
		To:        target,
		FromIndex: fromIndex,
		ToIndex:   model.source.Column(target).Count(),
	})
	switch result.Outcome {
	case board.OutcomeCommitted:
		model.heat.Ignite(item.ID, tui.HeatMoved, model.clock.Now())
		return tea.Batch(model.persist(*result.Pending), model.startHeatTick())
	case board.OutcomeRejected:
		model.logger.Debug("move rejected", "task", item.ID, "target", target, "error", err)
	case board.OutcomeDeclined:
		model.logger.Debug("move declined", "task", item.ID, "target", target)
	}
	return nil
}

func (pane *boardPane) render(model *Model, width, height int) string {
	theme := model.theme
	columns := len(pane.frame.Columns)
	if columns == 0 {
		return ""
	}
	columnWidth := max(width/columns, 16)
	innerWidth := columnWidth - 4
	now := model.clock.Now()

	rendered := make([]string, 0, columns)
	for _, columnView := range pane.frame.Columns {
		border := theme.BorderColor
		if columnView.Focused {
			border = theme.FocusBorder
		}
		title := lipgloss.NewStyle().Bold(true).Foreground(theme.StatusColor(columnView.Status)).
			Render(columnView.Title)
		count := fmt.Sprintf("%d", columnView.Count)
		if columnView.Count != columnView.Total {
			count = fmt.Sprintf("%d/%d", columnView.Count, columnView.Total)
		}
		lines := []string{title + " " + lipgloss.NewStyle().Foreground(theme.FaintText).Render(count), ""}

		for _, card := range columnView.Cards {
			lines = append(lines, pane.renderCard(theme, card, innerWidth, model.heat, now)...)
		}
		if columnView.Count == 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.FaintText).Render("empty"))
		}

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(columnWidth - 2).
			Height(max(height-2, 3)).
			MaxHeight(max(height, 5))
		rendered = append(rendered, box.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (pane *boardPane) renderCard(theme tui.Theme, card view.Card, width int, heat *tui.HeatTracker, now time.Time) []string {
	style := lipgloss.NewStyle().Foreground(theme.NormalText).Width(width)
	switch {
	case card.Grabbed:
		style = style.Background(theme.GrabbedBackground).Bold(true)
	case card.Focused:
		style = style.Background(theme.SelectedBackground).Bold(true)
	default:
		if accent, hot := heat.Accent(theme, card.Task.ID, now); hot {
			style = style.Background(accent)
		}
	}

	marker := lipgloss.NewStyle().Foreground(theme.PriorityColor(card.Task.Priority)).Render("●")
	title := ansi.Truncate(card.Task.Title, width-2, "…")
	lines := []string{style.Render(marker + " " + title)}

	meta := lipgloss.NewStyle().Foreground(theme.FaintText)
	var details []string
	if card.Task.DueDate != nil {
		details = append(details, "due "+task.FormatDate(card.Task.DueDate))
	}
	if names := card.Task.AssigneeNames(); len(names) > 0 {
		details = append(details, strings.Join(names, ", "))
	}
	if card.Pending {
		details = append(details, lipgloss.NewStyle().Foreground(theme.PendingForeground).Italic(true).Render("saving…"))
	}
	if len(details) > 0 {
		lines = append(lines, meta.Render(ansi.Truncate("  "+strings.Join(details, " · "), width, "…")))
	}
	for _, excerpt := range tui.Excerpt(card.Task.Description, width-2, 1) {
		lines = append(lines, meta.Render("  "+excerpt))
	}
	return append(lines, "")
}
