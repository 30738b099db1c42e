// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeatDecayDuration is how long a card glows after it moves.
const HeatDecayDuration = 3 * time.Second

// HeatTickInterval is the re-render interval while any card is hot.
const HeatTickInterval = 100 * time.Millisecond

// HeatKind selects the glow color.
type HeatKind int

const (
	// HeatMoved marks a card that landed in a new column.
	HeatMoved HeatKind = iota
	// HeatRollback marks a card the backend sent back.
	HeatRollback
)

type heatEntry struct {
	ignition time.Time
	kind     HeatKind
}

// HeatTracker maps task IDs to ignition times. Heat decays linearly
// from 1 to 0 over HeatDecayDuration. Times come from the caller so a
// fake clock drives it in tests.
type HeatTracker struct {
	entries map[string]heatEntry
}

// NewHeatTracker creates an empty tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{entries: make(map[string]heatEntry)}
}

// Ignite (re)starts the glow for a task.
func (tracker *HeatTracker) Ignite(taskID string, kind HeatKind, now time.Time) {
	tracker.entries[taskID] = heatEntry{ignition: now, kind: kind}
}

// Heat returns the current intensity for a task in [0, 1].
func (tracker *HeatTracker) Heat(taskID string, now time.Time) float64 {
	entry, exists := tracker.entries[taskID]
	if !exists {
		return 0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= HeatDecayDuration || elapsed < 0 {
		return 0
	}
	return 1 - float64(elapsed)/float64(HeatDecayDuration)
}

// Accent returns the background tint for a hot task, and false when
// the task is cold. Glow stays on for the first two thirds of the decay
// so 256-color terminals do not flicker through intermediate shades.
func (tracker *HeatTracker) Accent(theme Theme, taskID string, now time.Time) (lipgloss.Color, bool) {
	if tracker.Heat(taskID, now) < 1.0/3 {
		return "", false
	}
	if tracker.entries[taskID].kind == HeatRollback {
		return theme.HotAccentRollback, true
	}
	return theme.HotAccentMoved, true
}

// HasHot reports whether any task still glows, dropping decayed
// entries along the way.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for taskID, entry := range tracker.entries {
		if now.Sub(entry.ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.entries, taskID)
	}
	return hot
}
