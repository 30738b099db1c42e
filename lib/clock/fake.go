// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// Fake returns a FakeClock stopped at initial.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for tests. Time moves only when
// Advance is called, and AfterFunc callbacks run synchronously inside
// Advance in deadline order. Callbacks may schedule new timers; they
// must not call Advance.
//
// FakeClock is safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	pending []*fakeTimer
	issued  int
}

type fakeTimer struct {
	deadline time.Time
	callback func()
	// sequence breaks deadline ties in registration order.
	sequence int
	done     bool
}

// Now returns the fake time.
func (fake *FakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.current
}

// AfterFunc registers f to run once the clock has advanced by d. A
// non-positive d runs f before AfterFunc returns.
func (fake *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	fake.mu.Lock()
	pending := &fakeTimer{
		deadline: fake.current.Add(d),
		callback: f,
		sequence: fake.issued,
	}
	fake.issued++
	fake.pending = append(fake.pending, pending)
	fake.mu.Unlock()

	return &Timer{stopFunc: func() bool {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		if pending.done {
			return false
		}
		pending.done = true
		return true
	}}
}

// Advance moves the clock forward by d and runs every callback whose
// deadline is at or before the new time.
func (fake *FakeClock) Advance(d time.Duration) {
	fake.mu.Lock()
	fake.current = fake.current.Add(d)
	target := fake.current
	fake.mu.Unlock()

	for {
		due := fake.collectDue(target)
		if len(due) == 0 {
			return
		}
		for _, pending := range due {
			pending.callback()
		}
	}
}

// collectDue removes and returns the timers due at target, sorted by
// deadline then registration order.
func (fake *FakeClock) collectDue(target time.Time) []*fakeTimer {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	var due, remaining []*fakeTimer
	for _, pending := range fake.pending {
		switch {
		case pending.done:
		case !pending.deadline.After(target):
			pending.done = true
			due = append(due, pending)
		default:
			remaining = append(remaining, pending)
		}
	}
	fake.pending = remaining

	slices.SortStableFunc(due, func(a, b *fakeTimer) int {
		if order := a.deadline.Compare(b.deadline); order != 0 {
			return order
		}
		return a.sequence - b.sequence
	})
	return due
}

// PendingCount returns the number of timers that have neither fired
// nor been stopped.
func (fake *FakeClock) PendingCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	count := 0
	for _, pending := range fake.pending {
		if !pending.done {
			count++
		}
	}
	return count
}
