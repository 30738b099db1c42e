// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"board", "baord", 2},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			if got := levenshtein(test.a, test.b); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if got := levenshtein(test.b, test.a); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.b, test.a, got, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "board"}, {Name: "tasks"}, {Name: "members"}}
	if got := suggestCommand("task", commands); got != "tasks" {
		t.Errorf("suggestCommand(task) = %q, want tasks", got)
	}
	if got := suggestCommand("deploy-everything", commands); got != "" {
		t.Errorf("suggestCommand(deploy-everything) = %q, want none", got)
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("socket", "", "")
	flagSet.IntP("page-size", "n", 10, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--sockt", "x"}, "--socket"},
		{[]string{"--page-szie=5"}, "--page-size"},
		{[]string{"-n", "5", "--sockte"}, "--socket"},
		{[]string{"--completely-unrelated"}, ""},
		{[]string{"--", "--sockt"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
