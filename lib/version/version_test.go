// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInfoMarksDirtyBuilds(t *testing.T) {
	savedCommit, savedDirty := GitCommit, GitDirty
	t.Cleanup(func() { GitCommit, GitDirty = savedCommit, savedDirty })

	GitCommit = "abc1234"
	GitDirty = "true"
	if info := Info(); !strings.Contains(info, "abc1234-dirty") {
		t.Errorf("Info() = %q, want the commit marked dirty", info)
	}

	GitDirty = "false"
	if info := Info(); strings.Contains(info, "dirty") {
		t.Errorf("Info() = %q, want no dirty marker", info)
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q, want it to start with Info()", full)
	}
	if !strings.Contains(full, "Platform: ") {
		t.Errorf("Full() = %q, missing platform line", full)
	}
}

func TestHashFile(t *testing.T) {
	directory := t.TempDir()
	first := filepath.Join(directory, "first")
	second := filepath.Join(directory, "second")
	if err := os.WriteFile(first, []byte("taskboard"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(second, []byte("taskboard!"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	a, err := HashFile(first)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex characters", len(a))
	}
	again, err := HashFile(first)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if a != again {
		t.Errorf("digest changed between runs: %s vs %s", a, again)
	}
	b, err := HashFile(second)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if a == b {
		t.Error("different content produced the same digest")
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("HashFile on a missing file: want error")
	}
}

func TestSelfDigest(t *testing.T) {
	digest, path, err := SelfDigest()
	if err != nil {
		t.Fatalf("SelfDigest: %v", err)
	}
	if path == "" || len(digest) != 64 {
		t.Errorf("SelfDigest = (%q, %q), want a path and a 64-character digest", digest, path)
	}
}
