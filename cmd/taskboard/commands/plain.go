// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Galih066/lara-task/lib/board"
	"github.com/Galih066/lara-task/lib/collection"
	"github.com/Galih066/lara-task/lib/config"
	"github.com/Galih066/lara-task/lib/schema/task"
	"github.com/Galih066/lara-task/lib/tui"
	"github.com/Galih066/lara-task/lib/view"
)

// newTable returns a bordered table bound to the writer's color
// profile, so piped output carries no escape codes.
func newTable(renderer *lipgloss.Renderer, headers ...string) *table.Table {
	theme := tui.DefaultTheme
	header := renderer.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Padding(0, 1)
	cell := renderer.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle().Foreground(theme.BorderColor)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func printTasks(w io.Writer, tasks []task.Task, spec collection.Spec, cfg *config.Config, page int) error {
	engine := view.TaskEngine(tui.MatcherFor(cfg.View.SearchMode))
	result := engine.Run(tasks, spec, collection.Window{Page: page, PageSize: cfg.View.PageSize})
	if len(result.Filtered) == 0 {
		fmt.Fprintln(w, emptyText(spec, "tasks"))
		return nil
	}

	renderer := lipgloss.NewRenderer(w)
	rendered := newTable(renderer, "ID", "Title", "Status", "Priority", "Due", "Assignees")
	for _, item := range result.Page.Items {
		rendered.Row(
			item.ID,
			item.Title,
			renderer.NewStyle().Foreground(tui.DefaultTheme.StatusColor(item.Status)).Render(item.Status.Label()),
			renderer.NewStyle().Foreground(tui.DefaultTheme.PriorityColor(item.Priority)).Render(string(item.Priority)),
			task.FormatDate(item.DueDate),
			strings.Join(item.AssigneeNames(), ", "),
		)
	}
	fmt.Fprintln(w, rendered.Render())
	fmt.Fprintln(w, view.NewPager(result.Page, len(result.Filtered)).Summary())
	return nil
}

func printMembers(w io.Writer, members []task.Member, spec collection.Spec, cfg *config.Config, page int) error {
	engine := view.MemberEngine(tui.MatcherFor(cfg.View.SearchMode))
	result := engine.Run(members, spec, collection.Window{Page: page, PageSize: cfg.View.PageSize})
	if len(result.Filtered) == 0 {
		fmt.Fprintln(w, emptyText(spec, "members"))
		return nil
	}

	rendered := newTable(lipgloss.NewRenderer(w), "ID", "Name", "Email", "Role", "Status", "Joined")
	for _, member := range result.Page.Items {
		rendered.Row(member.ID, member.Name, member.Email, member.Role,
			string(member.Status), task.FormatDate(member.JoinDate))
	}
	fmt.Fprintln(w, rendered.Render())
	fmt.Fprintln(w, view.NewPager(result.Page, len(result.Filtered)).Summary())
	return nil
}

func emptyText(spec collection.Spec, noun string) string {
	if spec.Filtering() {
		return "No " + noun + " match the current filters."
	}
	return "No " + noun + "."
}

// printBoard lists each column with its cards in board order. The
// status filter does not apply: every column is always shown.
func printBoard(w io.Writer, tasks []task.Task, spec collection.Spec) error {
	spec.StatusFilter = collection.All
	engine := view.TaskEngine(nil)
	match := func(item task.Task) bool { return engine.Matches(item, spec) }
	boardView := view.BuildBoard(board.New(tasks), match, view.BoardCursor{Column: -1})

	for index, column := range boardView.Columns {
		if index > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", column.Title, columnCount(column))
		if column.Count == 0 {
			fmt.Fprintln(w, "  (empty)")
			continue
		}
		for _, card := range column.Cards {
			line := fmt.Sprintf("  %-8s %s", card.Task.ID, card.Task.Title)
			if card.Task.Priority != "" {
				line += " [" + string(card.Task.Priority) + "]"
			}
			if card.Task.DueDate != nil {
				line += " due " + task.FormatDate(card.Task.DueDate)
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

func columnCount(column view.ColumnView) string {
	if column.Count == column.Total {
		return strconv.Itoa(column.Count)
	}
	return fmt.Sprintf("%d of %d", column.Count, column.Total)
}

// printCalendar draws the month as a text grid: one line of day
// numbers per week, followed by the tasks due that week.
func printCalendar(w io.Writer, tasks []task.Task, spec collection.Spec, year int, month time.Month, today time.Time) error {
	calendar := view.BuildCalendar(view.TaskEngine(nil), tasks, spec, year, month, today)

	fmt.Fprintln(w, calendar.Title())
	fmt.Fprintln(w, " Sun  Mon  Tue  Wed  Thu  Fri  Sat")
	for _, week := range calendar.Weeks {
		var cells strings.Builder
		var due []string
		for _, day := range week {
			switch {
			case !day.InMonth:
				cells.WriteString("   . ")
			case day.Today:
				fmt.Fprintf(&cells, " [%2d]", day.Date.Day())
			default:
				fmt.Fprintf(&cells, "  %2d ", day.Date.Day())
			}
			if !day.InMonth {
				continue
			}
			for _, item := range day.Tasks {
				due = append(due, fmt.Sprintf("    %s  %s (%s)", day.Date.Format("Jan 02"), item.Title, item.Status.Label()))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(cells.String(), " "))
		for _, line := range due {
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintf(w, "%d due this month, %d unscheduled\n", calendar.Count(), calendar.Unscheduled)
	return nil
}

// printTask writes the full record of one task with its description
// rendered as markdown.
func printTask(w io.Writer, item task.Task, width int) {
	fmt.Fprintf(w, "%s  %s\n", item.ID, item.Title)
	fmt.Fprintf(w, "Status:    %s\n", item.Status.Label())
	if item.Priority != "" {
		fmt.Fprintf(w, "Priority:  %s\n", item.Priority)
	}
	if item.StartDate != nil || item.DueDate != nil {
		fmt.Fprintf(w, "Schedule:  %s to %s\n", dateOrDash(item.StartDate), dateOrDash(item.DueDate))
	}
	if len(item.Assignees) > 0 {
		fmt.Fprintf(w, "Assignees: %s\n", strings.Join(item.AssigneeNames(), ", "))
	}
	if item.Initiator.ID != "" {
		fmt.Fprintf(w, "Initiator: %s\n", item.Initiator.Display())
	}
	for _, image := range item.Images {
		fmt.Fprintf(w, "Image:     %s (%s, %d bytes)\n", image.Name, image.Type, image.Size)
	}
	if description := tui.RenderMarkdownTo(w, item.Description, tui.DefaultTheme, width); description != "" {
		fmt.Fprintf(w, "\n%s\n", description)
	}
}

func dateOrDash(date *time.Time) string {
	if date == nil {
		return "-"
	}
	return task.FormatDate(date)
}
