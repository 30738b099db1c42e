// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the taskboard command tree.
package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/Galih066/lara-task/cmd/taskboard/cli"
	"github.com/Galih066/lara-task/lib/backend"
	"github.com/Galih066/lara-task/lib/clock"
	"github.com/Galih066/lara-task/lib/config"
	"github.com/Galih066/lara-task/lib/dataset"
	"github.com/Galih066/lara-task/lib/schema/task"
	"github.com/Galih066/lara-task/lib/version"
)

// Root builds the complete command tree writing to stdout.
func Root() *cli.Command {
	return newRoot(os.Stdout)
}

func newRoot(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name: "taskboard",
		Description: `taskboard: a terminal task board.

Browse, filter, and sort tasks and team members, move tasks across a
kanban board, and see due dates on a month calendar. Data comes from a
snapshot file or from a backend served on a unix socket.`,
		Subcommands: []*cli.Command{
			screenCommand(stdout, screenTasks),
			screenCommand(stdout, screenBoard),
			screenCommand(stdout, screenMembers),
			screenCommand(stdout, screenCalendar),
			serveCommand(),
			versionCommand(stdout),
		},
	}
}

func versionCommand(stdout io.Writer) *cli.Command {
	var digest bool
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVar(&digest, "digest", false, "also print the BLAKE3 digest of the running binary")
			return flagSet
		},
		Run: func(args []string) error {
			fmt.Fprintf(stdout, "taskboard %s\n", version.Full())
			if !digest {
				return nil
			}
			sum, path, err := version.SelfDigest()
			if err != nil {
				return cli.Internal("%w", err)
			}
			fmt.Fprintf(stdout, "  Binary: %s\n  Digest: %s\n", path, sum)
			return nil
		},
	}
}

// globals are the flags every data-reading command accepts. Zero
// values leave the configuration untouched.
type globals struct {
	configPath string
	data       string
	members    string
	socket     string
	pageSize   int
	logFile    string
}

func (g *globals) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.configPath, "config", "", "YAML config file (default: $TASKBOARD_CONFIG)")
	flagSet.StringVar(&g.data, "data", "", "task snapshot file (.json, .jsonl, .jsonc; .zst or .lz4 compressed)")
	flagSet.StringVar(&g.members, "members", "", "member snapshot file")
	flagSet.StringVar(&g.socket, "socket", "", "backend unix socket (empty: load the snapshot in process)")
	flagSet.IntVar(&g.pageSize, "page-size", 0, "rows per page (0: use the configured size)")
	flagSet.StringVar(&g.logFile, "log-file", "", "append JSON log records to this file")
}

// config loads the configuration and applies flag overrides.
func (g *globals) config() (*config.Config, error) {
	var loaded *config.Config
	var err error
	if g.configPath != "" {
		loaded, err = config.LoadFile(g.configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}

	if g.data != "" {
		loaded.Data.Tasks = g.data
	}
	if g.members != "" {
		loaded.Data.Members = g.members
	}
	if g.socket != "" {
		loaded.Backend.Socket = g.socket
	}
	if g.pageSize > 0 {
		loaded.View.PageSize = g.pageSize
	}
	if err := loaded.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	return loaded, nil
}

// openBackend connects to the configured socket, or loads the snapshot
// files into a memory backend when no socket is set.
func openBackend(cfg *config.Config, logger *slog.Logger) (backend.Backend, error) {
	if cfg.Backend.Socket != "" {
		logger.Debug("using socket backend", "socket", cfg.Backend.Socket)
		return backend.NewClient(cfg.Backend.Socket, cfg.Backend.Timeout), nil
	}
	return loadMemory(cfg, logger)
}

func loadMemory(cfg *config.Config, logger *slog.Logger) (*backend.Memory, error) {
	tasks, err := dataset.LoadTasks(cfg.Data.Tasks)
	if err != nil {
		return nil, snapshotError(err)
	}
	var members []task.Member
	if cfg.Data.Members != "" {
		if members, err = dataset.LoadMembers(cfg.Data.Members); err != nil {
			return nil, snapshotError(err)
		}
	}
	dataset.ResolveAssignees(tasks, members)
	logger.Debug("snapshot loaded", "tasks", len(tasks), "members", len(members))
	return backend.NewMemory(tasks, members, clock.Real(), logger), nil
}

func snapshotError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return cli.NotFound("%w", err).
			WithHint("Pass --data (and --members) or set data.tasks in the config file.")
	}
	return cli.Validation("%w", err)
}
