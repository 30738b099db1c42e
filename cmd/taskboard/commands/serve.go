// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/Galih066/lara-task/cmd/taskboard/cli"
	"github.com/Galih066/lara-task/lib/backend"
)

func serveCommand() *cli.Command {
	var flags globals
	return &cli.Command{
		Name:    "serve",
		Summary: "Serve a snapshot as a backend on a unix socket",
		Description: `Load the task and member snapshots into memory and serve them on a
unix socket. Any number of 'taskboard board --socket' sessions can
share the backend; moves, edits, and new tasks live until the server
stops. Runs until interrupted.`,
		Usage: "taskboard serve --socket <path> [flags]",
		Examples: []cli.Example{
			{Description: "Serve a snapshot", Command: "taskboard serve --data tasks.jsonl.zst --members members.json --socket /tmp/taskboard.sock"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("serve", pflag.ContinueOnError)
			flags.addFlags(flagSet)
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
			socketPath := cfg.Backend.Socket
			if socketPath == "" {
				return cli.Validation("--socket is required")
			}
			if socketLive(socketPath) {
				return cli.Conflict("socket %s is already served by another process", socketPath).
					WithHint("Stop the other server or pick a different --socket path.")
			}

			logger := cli.NewCommandLogger()
			if flags.logFile != "" {
				fileHandler, closeLog, err := cli.OpenFileLogHandler(flags.logFile)
				if err != nil {
					return cli.Validation("cannot open log file: %w", err)
				}
				defer closeLog()
				logger = slog.New(cli.FanoutHandler{logger.Handler(), fileHandler})
			}

			source, err := loadMemory(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := backend.NewServer(source, socketPath, logger).Serve(ctx); err != nil {
				return cli.Internal("%w", err)
			}
			return nil
		},
	}
}

// socketLive reports whether something accepts connections on path.
func socketLive(path string) bool {
	conn, err := net.DialTimeout("unix", path, 200*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
