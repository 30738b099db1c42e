// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// taskboard is a terminal task board: a paginated task list, a kanban
// board, a member list, and a month calendar over one working set.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Galih066/lara-task/cmd/taskboard/cli"
	"github.com/Galih066/lara-task/cmd/taskboard/commands"
)

func main() {
	os.Exit(exitCode(os.Stderr, run()))
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}

// exitCode reports err on w and maps it to the process exit status.
// An ExitError has already printed its own output.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitError *cli.ExitError
	if errors.As(err, &exitError) {
		return exitError.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	var toolError *cli.ToolError
	if errors.As(err, &toolError) {
		if toolError.Hint != "" {
			fmt.Fprintf(w, "hint: %s\n", toolError.Hint)
		}
		return toolError.ExitCode()
	}
	return 1
}
