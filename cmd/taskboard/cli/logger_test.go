// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, test := range tests {
		t.Setenv(LogLevelEnv, test.value)
		if got := LevelFromEnv(slog.LevelInfo); got != test.want {
			t.Errorf("LevelFromEnv with %q = %v, want %v", test.value, got, test.want)
		}
	}
}

func TestFanoutHandlerRoutesByLevel(t *testing.T) {
	var warnings, everything bytes.Buffer
	logger := slog.New(FanoutHandler{
		slog.NewTextHandler(&warnings, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&everything, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}).With("component", "board")

	logger.Debug("cursor moved")
	logger.Warn("move rejected", "task", "t1")

	if strings.Contains(warnings.String(), "cursor moved") {
		t.Error("debug record reached the warn handler")
	}
	if !strings.Contains(warnings.String(), "move rejected") || !strings.Contains(warnings.String(), "component=board") {
		t.Errorf("warn handler output = %q", warnings.String())
	}
	if !strings.Contains(everything.String(), "cursor moved") {
		t.Errorf("debug handler output = %q", everything.String())
	}
	if (FanoutHandler{}).Enabled(context.Background(), slog.LevelError) {
		t.Error("empty fanout should not be enabled")
	}
}

func TestOpenFileLogHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.log")
	handler, closeFile, err := OpenFileLogHandler(path)
	if err != nil {
		t.Fatal(err)
	}
	slog.New(handler).Debug("fetched", "tasks", 3)
	closeFile()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, data)
	}
	if record["msg"] != "fetched" || record["tasks"] != float64(3) {
		t.Errorf("record = %v", record)
	}
}
