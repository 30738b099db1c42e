// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/Galih066/lara-task/lib/schema/task"
)

// Theme defines the color palette for the taskboard terminal UIs. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Priority colors, indexed by task.Priority.Rank(): high, medium,
	// low, untagged.
	PriorityColors [4]lipgloss.Color

	// Status colors, one per board column.
	StatusTodo       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusReview     lipgloss.Color
	StatusDone       lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	FocusBorder      lipgloss.Color
	HelpText         lipgloss.Color

	// Card accents on the board: the card being carried and the card
	// whose move is waiting for the backend.
	GrabbedBackground lipgloss.Color
	PendingForeground lipgloss.Color

	// Heat tints for cards that just moved or were rolled back.
	HotAccentMoved    lipgloss.Color
	HotAccentRollback lipgloss.Color

	// Fuzzy match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Notification levels in the status bar.
	NoticeInfo  lipgloss.Color
	NoticeWarn  lipgloss.Color
	NoticeError lipgloss.Color

	// Dropdown overlays.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color

	// Inline form errors.
	ErrorText lipgloss.Color
}

// PriorityColor returns the color for a task priority.
func (theme Theme) PriorityColor(priority task.Priority) lipgloss.Color {
	return theme.PriorityColors[priority.Rank()]
}

// StatusColor returns the color for a status and FaintText for unknown
// values.
func (theme Theme) StatusColor(status task.Status) lipgloss.Color {
	switch status {
	case task.StatusTodo:
		return theme.StatusTodo
	case task.StatusInProgress:
		return theme.StatusInProgress
	case task.StatusReview:
		return theme.StatusReview
	case task.StatusDone:
		return theme.StatusDone
	default:
		return theme.FaintText
	}
}

// NoticeColor returns the status bar color for a notice level.
func (theme Theme) NoticeColor(level slog.Level) lipgloss.Color {
	switch {
	case level >= slog.LevelError:
		return theme.NoticeError
	case level >= slog.LevelWarn:
		return theme.NoticeWarn
	default:
		return theme.NoticeInfo
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityColors: [4]lipgloss.Color{
		lipgloss.Color("196"), // high: bright red
		lipgloss.Color("214"), // medium: amber
		lipgloss.Color("75"),  // low: blue
		lipgloss.Color("240"), // untagged: dim gray
	},

	StatusTodo:       lipgloss.Color("245"), // gray
	StatusInProgress: lipgloss.Color("220"), // yellow
	StatusReview:     lipgloss.Color("141"), // light purple
	StatusDone:       lipgloss.Color("114"), // green

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	FocusBorder:      lipgloss.Color("75"),
	HelpText:         lipgloss.Color("241"),

	GrabbedBackground: lipgloss.Color("24"),
	PendingForeground: lipgloss.Color("244"),

	HotAccentMoved:    lipgloss.Color("58"), // dark amber
	HotAccentRollback: lipgloss.Color("52"), // dark red

	SearchHighlightBackground: lipgloss.Color("58"),

	NoticeInfo:  lipgloss.Color("114"),
	NoticeWarn:  lipgloss.Color("214"),
	NoticeError: lipgloss.Color("196"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),

	ErrorText: lipgloss.Color("203"),
}
