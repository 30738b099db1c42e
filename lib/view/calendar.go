// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"slices"
	"strconv"
	"time"

	"github.com/Galih066/lara-task/lib/collection"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// Day is one cell of the month grid.
type Day struct {
	Date time.Time

	// InMonth is false for the leading and trailing days that pad the
	// grid to whole weeks.
	InMonth bool
	Today   bool
	Tasks   []task.Task
}

// Calendar is a month of tasks placed on their due dates.
type Calendar struct {
	Year  int
	Month time.Month

	// Weeks run Sunday to Saturday.
	Weeks [][]Day

	// Unscheduled counts matching tasks without a due date.
	Unscheduled int
}

// Title returns "May 2024".
func (calendar Calendar) Title() string {
	return calendar.Month.String() + " " + strconv.Itoa(calendar.Year)
}

// BuildCalendar filters items through the engine and lays the matches
// out on a grid of whole weeks covering the month. Tasks within one
// day are ordered by the engine's sort, falling back to priority.
func BuildCalendar(engine *collection.Engine[task.Task], items []task.Task, spec collection.Spec, year int, month time.Month, today time.Time) Calendar {
	if spec.SortKey == "" {
		spec.SortKey = SortPriority
	}
	matched := engine.Sort(engine.Filter(items, spec), spec.SortKey, spec.SortDirection)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	byDay := make(map[string][]task.Task)
	calendar := Calendar{Year: year, Month: month}
	for _, item := range matched {
		if item.DueDate == nil {
			calendar.Unscheduled++
			continue
		}
		key := task.FormatDate(item.DueDate)
		byDay[key] = append(byDay[key], item)
	}

	var week []Day
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		week = append(week, Day{
			Date:    date,
			InMonth: date.Month() == month,
			Today:   task.SameDay(date, today),
			Tasks:   slices.Clip(byDay[date.Format(task.DateLayout)]),
		})
		if len(week) == 7 {
			calendar.Weeks = append(calendar.Weeks, week)
			week = nil
		}
	}
	return calendar
}

// Count returns the number of tasks placed on the grid.
func (calendar Calendar) Count() int {
	total := 0
	for _, week := range calendar.Weeks {
		for _, day := range week {
			if day.InMonth {
				total += len(day.Tasks)
			}
		}
	}
	return total
}
