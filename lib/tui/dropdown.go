// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text.
	Value string // Filter value or status applied on selection.
}

// DropdownOverlay is a floating menu anchored at a screen position. The
// owning model routes keys to it while it is open: up/down move, enter
// selects, escape dismisses.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int
	AnchorY int

	// Field names what the selection changes: "move" for a status
	// change, "priority" for a priority change.
	Field string

	// ItemID is the task the dropdown acts on.
	ItemID string
}

// NewDropdown builds a dropdown with the cursor on the option whose
// value equals current, or on the first option.
func NewDropdown(field string, options []DropdownOption, current string) *DropdownOverlay {
	dropdown := &DropdownOverlay{Options: options, Field: field}
	for index, option := range options {
		if option.Value == current {
			dropdown.Cursor = index
			break
		}
	}
	return dropdown
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the highlighted option.
func (dropdown *DropdownOverlay) Selected() (DropdownOption, bool) {
	if dropdown.Cursor < 0 || dropdown.Cursor >= len(dropdown.Options) {
		return DropdownOption{}, false
	}
	return dropdown.Options[dropdown.Cursor], true
}

// Width returns the rendered width: marker column, widest label, and
// one column of padding on each side.
func (dropdown *DropdownOverlay) Width() int {
	widest := 0
	for _, option := range dropdown.Options {
		widest = max(widest, ansi.StringWidth(option.Label))
	}
	return 2 + widest + 2
}

// Render produces the dropdown lines for SpliceOverlay. Every line has
// the same visible width.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	innerWidth := dropdown.Width() - 2
	background := lipgloss.NewStyle().
		Foreground(theme.OverlayForeground).
		Background(theme.OverlayBackground)
	selected := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground).
		Bold(true)

	lines := make([]string, 0, len(dropdown.Options))
	for index, option := range dropdown.Options {
		style, marker := background, "  "
		if index == dropdown.Cursor {
			style, marker = selected, "> "
		}
		content := marker + option.Label
		content += strings.Repeat(" ", max(innerWidth-ansi.StringWidth(content), 0))
		lines = append(lines, style.Render(" "+content+" "))
	}
	return lines
}
