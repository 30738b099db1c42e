// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the time source for everything in the task
// board that reads the current time or schedules work: notification
// expiry and creation timestamps.
//
// Production code holds a Clock and receives Real(). Tests pass a
// FakeClock, which only moves when Advance is called:
//
//	fake := clock.Fake(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
//	bus := notify.NewBus(fake, 4*time.Second)
//	bus.Post(notify.Notice{Message: "saved"})
//	fake.Advance(4 * time.Second) // the notice expires here
package clock
