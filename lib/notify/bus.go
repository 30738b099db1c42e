// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package notify is the transient notification bus behind the status
// bar. Components post notices (a rejected move, a failed save, a
// warning log record) and the bus expires them after a configurable
// duration. Nothing in the core holds a global notification queue;
// the bus is created by the command and injected as a [Poster].
package notify

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Galih066/lara-task/lib/clock"
)

// ID identifies a posted notice. IDs are never reused within a bus.
type ID uint64

// Notice is one transient message.
type Notice struct {
	ID ID

	// Level selects styling: info, warn, error.
	Level slog.Level

	// Code is a stable machine-readable reason ("dates_required",
	// "persist_failed"). Optional.
	Code string

	Message string

	// Duration overrides the bus default. Zero uses the default; a
	// negative duration keeps the notice until dismissed.
	Duration time.Duration

	// Posted is stamped by the bus.
	Posted time.Time
}

// Poster accepts notices. The board and the log handler depend on this
// interface rather than on *Bus.
type Poster interface {
	Post(notice Notice) ID
}

// DefaultDuration is how long a notice stays visible when neither the
// bus nor the notice sets a duration.
const DefaultDuration = 4 * time.Second

// DefaultLimit is the maximum number of notices kept at once.
const DefaultLimit = 3

// Bus holds the active notices in posting order and expires them on
// the injected clock. Safe for concurrent use: expiry callbacks run on
// timer goroutines while the UI reads Active.
type Bus struct {
	clock    clock.Clock
	duration time.Duration
	limit    int

	mu      sync.Mutex
	nextID  ID
	notices []Notice
	timers  map[ID]*clock.Timer
	changes chan struct{}
}

// NewBus creates a bus. A non-positive duration uses DefaultDuration.
func NewBus(source clock.Clock, duration time.Duration) *Bus {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Bus{
		clock:    source,
		duration: duration,
		limit:    DefaultLimit,
		timers:   make(map[ID]*clock.Timer),
		changes:  make(chan struct{}, 1),
	}
}

// SetLimit changes the maximum number of concurrently active notices.
// When the limit is exceeded the oldest notice is dropped.
func (bus *Bus) SetLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	bus.mu.Lock()
	bus.limit = limit
	bus.trimLocked()
	bus.mu.Unlock()
}

// Post enqueues a notice and schedules its expiry.
func (bus *Bus) Post(notice Notice) ID {
	bus.mu.Lock()
	bus.nextID++
	notice.ID = bus.nextID
	notice.Posted = bus.clock.Now()
	bus.notices = append(bus.notices, notice)
	bus.trimLocked()

	duration := notice.Duration
	if duration == 0 {
		duration = bus.duration
	}
	id := notice.ID
	bus.mu.Unlock()

	if duration > 0 {
		timer := bus.clock.AfterFunc(duration, func() { bus.Dismiss(id) })
		bus.mu.Lock()
		// The fake clock may have fired synchronously; only track the
		// timer while the notice is still active.
		if bus.indexLocked(id) >= 0 {
			bus.timers[id] = timer
		}
		bus.mu.Unlock()
	}

	bus.signal()
	return id
}

// Dismiss removes a notice before it expires. Returns false if the
// notice is no longer active.
func (bus *Bus) Dismiss(id ID) bool {
	bus.mu.Lock()
	index := bus.indexLocked(id)
	if index < 0 {
		bus.mu.Unlock()
		return false
	}
	bus.removeLocked(index)
	bus.mu.Unlock()
	bus.signal()
	return true
}

// Active returns a copy of the active notices, oldest first.
func (bus *Bus) Active() []Notice {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	return slices.Clone(bus.notices)
}

// Latest returns the most recently posted active notice.
func (bus *Bus) Latest() (Notice, bool) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.notices) == 0 {
		return Notice{}, false
	}
	return bus.notices[len(bus.notices)-1], true
}

// Changes returns a channel that receives a value after the active set
// changes. Signals coalesce: a reader that falls behind sees one
// pending signal, not one per change.
func (bus *Bus) Changes() <-chan struct{} {
	return bus.changes
}

// Clear dismisses every notice and cancels their timers.
func (bus *Bus) Clear() {
	bus.mu.Lock()
	for id, timer := range bus.timers {
		timer.Stop()
		delete(bus.timers, id)
	}
	bus.notices = nil
	bus.mu.Unlock()
	bus.signal()
}

func (bus *Bus) signal() {
	select {
	case bus.changes <- struct{}{}:
	default:
	}
}

func (bus *Bus) indexLocked(id ID) int {
	return slices.IndexFunc(bus.notices, func(notice Notice) bool { return notice.ID == id })
}

func (bus *Bus) removeLocked(index int) {
	id := bus.notices[index].ID
	if timer, exists := bus.timers[id]; exists {
		timer.Stop()
		delete(bus.timers, id)
	}
	bus.notices = slices.Delete(bus.notices, index, index+1)
}

func (bus *Bus) trimLocked() {
	for len(bus.notices) > bus.limit {
		bus.removeLocked(0)
	}
}
