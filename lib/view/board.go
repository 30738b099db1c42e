// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"github.com/Galih066/lara-task/lib/board"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// BoardCursor is the keyboard position on the board. Grabbed holds the
// ID of the card being carried, or empty.
type BoardCursor struct {
	Column  int
	Row     int
	Grabbed string
}

// Card is one task in a column.
type Card struct {
	Task    task.Task
	Focused bool
	Grabbed bool

	// Pending marks a card whose move has not been acknowledged.
	Pending bool
}

// ColumnView is one rendered column.
type ColumnView struct {
	Status task.Status
	Title  string
	Cards  []Card

	// Count is the number of visible cards; Total counts the column
	// before the match predicate.
	Count   int
	Total   int
	Focused bool
}

// BoardView is the whole board for one frame.
type BoardView struct {
	Columns []ColumnView
	Total   int
}

// FocusedCard returns the card under the cursor.
func (view BoardView) FocusedCard() (Card, bool) {
	for _, column := range view.Columns {
		for _, card := range column.Cards {
			if card.Focused {
				return card, true
			}
		}
	}
	return Card{}, false
}

// BuildBoard derives the column view-models. A nil match shows every
// task. The cursor row is clamped to the focused column.
func BuildBoard(source *board.Board, match func(task.Task) bool, cursor BoardCursor) BoardView {
	columns := source.Columns()
	view := BoardView{Columns: make([]ColumnView, len(columns))}
	focusColumn := min(max(cursor.Column, 0), len(columns)-1)

	for position, column := range columns {
		columnView := ColumnView{
			Status:  column.Status,
			Title:   column.Status.Label(),
			Total:   column.Count(),
			Focused: position == focusColumn,
			Cards:   make([]Card, 0, column.Count()),
		}
		for _, item := range column.Items {
			if match != nil && !match(item) {
				continue
			}
			columnView.Cards = append(columnView.Cards, Card{
				Task:    item,
				Grabbed: cursor.Grabbed != "" && item.ID == cursor.Grabbed,
				Pending: source.Pending(item.ID),
			})
		}
		columnView.Count = len(columnView.Cards)
		view.Total += columnView.Count

		if columnView.Focused && columnView.Count > 0 {
			row := min(max(cursor.Row, 0), columnView.Count-1)
			columnView.Cards[row].Focused = true
		}
		view.Columns[position] = columnView
	}
	return view
}

// ClampCursor keeps the cursor inside the view. A grabbed card pulls
// the cursor to wherever it now lives.
func ClampCursor(view BoardView, cursor BoardCursor) BoardCursor {
	if len(view.Columns) == 0 {
		return BoardCursor{Grabbed: cursor.Grabbed}
	}
	if cursor.Grabbed != "" {
		for columnIndex, column := range view.Columns {
			for rowIndex, card := range column.Cards {
				if card.Task.ID == cursor.Grabbed {
					return BoardCursor{Column: columnIndex, Row: rowIndex, Grabbed: cursor.Grabbed}
				}
			}
		}
		cursor.Grabbed = ""
	}
	cursor.Column = min(max(cursor.Column, 0), len(view.Columns)-1)
	count := view.Columns[cursor.Column].Count
	if count == 0 {
		cursor.Row = 0
	} else {
		cursor.Row = min(max(cursor.Row, 0), count-1)
	}
	return cursor
}
