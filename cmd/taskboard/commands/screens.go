// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/Galih066/lara-task/cmd/taskboard/cli"
	"github.com/Galih066/lara-task/lib/clock"
	"github.com/Galih066/lara-task/lib/collection"
	"github.com/Galih066/lara-task/lib/config"
	"github.com/Galih066/lara-task/lib/notify"
	"github.com/Galih066/lara-task/lib/taskui"
	"github.com/Galih066/lara-task/lib/view"
)

type screenKind int

const (
	screenTasks screenKind = iota
	screenBoard
	screenMembers
	screenCalendar
)

var screenHelp = map[screenKind]struct {
	name, summary, description string
	screen                     taskui.Screen
}{
	screenTasks: {
		"tasks", "Browse, search, and manage tasks",
		`Open the task list. Tasks can be searched, filtered by status and
priority, sorted by any column, and paged. Enter shows a task's
details; n opens the create form.`,
		taskui.ScreenTasks,
	},
	screenBoard: {
		"board", "Move tasks across the kanban board",
		`Open the kanban board. Space grabs a card, the arrow keys carry it
between columns, and space drops it. Moves are committed at once and
rolled back if the backend rejects them.`,
		taskui.ScreenBoard,
	},
	screenMembers: {
		"members", "Browse team members",
		`Open the member list. Members can be searched by name and email,
filtered by status, and sorted. Enter lists the member's tasks.`,
		taskui.ScreenMembers,
	},
	screenCalendar: {
		"calendar", "Show tasks on a month calendar",
		`Open the month calendar with every task placed on its due date.
Tasks without a due date are counted as unscheduled.`,
		taskui.ScreenCalendar,
	},
}

// plainOptions are the filters for non-interactive output.
type plainOptions struct {
	plain    bool
	search   string
	status   string
	priority string
	sortKey  string
	desc     bool
	page     int
	month    string
}

func screenCommand(stdout io.Writer, kind screenKind) *cli.Command {
	help := screenHelp[kind]
	var flags globals
	var plain plainOptions
	var initiator string

	command := &cli.Command{
		Name:        help.name,
		Summary:     help.summary,
		Description: help.description,
		Usage:       "taskboard " + help.name + " [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet(help.name, pflag.ContinueOnError)
			flags.addFlags(flagSet)
			flagSet.StringVar(&initiator, "as", "", "member ID recorded as the initiator of created tasks")
			flagSet.BoolVar(&plain.plain, "plain", false, "print once to stdout instead of opening the interface")
			flagSet.StringVar(&plain.search, "search", "", "search term (with --plain)")
			flagSet.IntVar(&plain.page, "page", 1, "page number (with --plain)")
			switch kind {
			case screenTasks, screenMembers:
				flagSet.StringVar(&plain.status, "status", "", "status filter (with --plain)")
				flagSet.StringVar(&plain.sortKey, "sort", "", "sort key (with --plain)")
				flagSet.BoolVar(&plain.desc, "desc", false, "sort descending (with --plain)")
			}
			if kind == screenTasks || kind == screenBoard || kind == screenCalendar {
				flagSet.StringVar(&plain.priority, "priority", "", "priority filter (with --plain)")
			}
			if kind == screenCalendar {
				flagSet.StringVar(&plain.month, "month", "", "month to show as YYYY-MM (default: current)")
			}
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			if plain.plain {
				return runPlain(stdout, kind, cfg, plain)
			}
			return runInteractive(help.screen, cfg, flags.logFile, initiator)
		},
	}
	if kind == screenTasks {
		command.Examples = []cli.Example{
			{Description: "Browse tasks from a snapshot", Command: "taskboard tasks --data tasks.json --members members.json"},
			{Description: "Print high-priority tasks due soonest", Command: "taskboard tasks --plain --priority high --sort due_date"},
			{Description: "Show one task with its description", Command: "taskboard tasks show t-104"},
		}
		command.Subcommands = []*cli.Command{showCommand(stdout)}
	}
	if kind == screenBoard {
		command.Examples = []cli.Example{
			{Description: "Connect to a running backend", Command: "taskboard board --socket /run/taskboard.sock --as m-7"},
		}
	}
	return command
}

// runInteractive launches the bubbletea program. Log records at warn
// and above become status bar notices; stderr is owned by the
// alternate screen, so nothing else is written there.
func runInteractive(screen taskui.Screen, cfg *config.Config, logFile, initiator string) error {
	bus := notify.NewBus(clock.Real(), cfg.Notifications.Duration)
	bus.SetLimit(cfg.Notifications.Max)

	handlers := cli.FanoutHandler{notify.NewHandler(bus, slog.LevelWarn)}
	if logFile != "" {
		fileHandler, closeLog, err := cli.OpenFileLogHandler(logFile)
		if err != nil {
			return cli.Validation("cannot open log file: %w", err)
		}
		defer closeLog()
		handlers = append(handlers, fileHandler)
	}
	logger := slog.New(handlers)

	source, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}

	model := taskui.NewModel(taskui.Options{
		Backend:       source,
		Bus:           bus,
		Clock:         clock.Real(),
		Logger:        logger,
		Screen:        screen,
		PageSize:      cfg.View.PageSize,
		SortKey:       cfg.View.SortKey,
		SortDirection: cfg.Direction(),
		SearchMode:    cfg.View.SearchMode,
		Timeout:       cfg.Backend.Timeout,
		Initiator:     initiator,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// runPlain fetches once and writes a single rendering to stdout.
func runPlain(stdout io.Writer, kind screenKind, cfg *config.Config, options plainOptions) error {
	logger := cli.NewCommandLogger()
	source, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := callContext(cfg)
	defer cancel()
	tasks, err := source.Tasks(ctx)
	if err != nil {
		return cli.Classify(fmt.Errorf("fetching tasks: %w", err))
	}

	spec := collection.Spec{
		SearchTerm:     options.search,
		StatusFilter:   options.status,
		PriorityFilter: options.priority,
		SortKey:        options.sortKey,
		SortDirection:  cfg.Direction(),
	}
	if spec.SortKey == "" {
		spec.SortKey = cfg.View.SortKey
	}
	if options.desc {
		spec.SortDirection = collection.Descending
	}

	switch kind {
	case screenTasks:
		return printTasks(stdout, tasks, spec, cfg, options.page)
	case screenBoard:
		return printBoard(stdout, tasks, spec)
	case screenCalendar:
		year, month, err := parseMonth(options.month, time.Now())
		if err != nil {
			return err
		}
		return printCalendar(stdout, tasks, spec, year, month, time.Now())
	}

	members, err := source.Members(ctx)
	if err != nil {
		return cli.Classify(fmt.Errorf("fetching members: %w", err))
	}
	if options.sortKey == "" {
		spec.SortKey = view.SortName
	}
	return printMembers(stdout, members, spec, cfg, options.page)
}

// callContext bounds a one-shot backend call by the configured
// timeout. Zero means no deadline.
func callContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.Backend.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), cfg.Backend.Timeout)
}

// parseMonth reads "YYYY-MM"; empty means the month containing now.
func parseMonth(value string, now time.Time) (int, time.Month, error) {
	if strings.TrimSpace(value) == "" {
		return now.Year(), now.Month(), nil
	}
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, cli.Validation("invalid --month %q: expected YYYY-MM", value)
	}
	return parsed.Year(), parsed.Month(), nil
}

func showCommand(stdout io.Writer) *cli.Command {
	var flags globals
	var width int
	return &cli.Command{
		Name:    "show",
		Summary: "Print one task with its rendered description",
		Usage:   "taskboard tasks show <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.addFlags(flagSet)
			flagSet.IntVar(&width, "width", 80, "wrap width for the description")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one task ID, got %d arguments", len(args))
			}
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			logger := cli.NewCommandLogger()
			source, err := openBackend(cfg, logger)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(cfg)
			defer cancel()
			tasks, err := source.Tasks(ctx)
			if err != nil {
				return cli.Classify(fmt.Errorf("fetching tasks: %w", err))
			}
			for _, item := range tasks {
				if item.ID == args[0] {
					printTask(stdout, item, width)
					return nil
				}
			}
			return cli.NotFound("task %q not found", args[0]).
				WithHint("Run 'taskboard tasks --plain' to list task IDs.")
		},
	}
}
