// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/Galih066/lara-task/lib/collection"
)

var fuzzyInitOnce sync.Once

// FuzzyResult is the outcome of matching one pattern against one text.
type FuzzyResult struct {
	Matched bool
	Score   int

	// Positions are the rune offsets of matched characters in text,
	// ascending. Used for highlighting.
	Positions []int
}

// FuzzyMatch runs fzf's V2 algorithm against text. Matching is
// case-insensitive: pattern is lowered before the call. An empty
// pattern matches everything with score zero. slab may be nil; passing
// one avoids per-call allocation when matching many records.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}
	fuzzyInitOnce.Do(func() { algo.Init("default") })

	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = unicode.ToLower(character)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Matched: true, Score: result.Score}
	if positions != nil {
		matched.Positions = make([]int, len(*positions))
		copy(matched.Positions, *positions)
		// fzf reports positions back to front.
		for left, right := 0, len(matched.Positions)-1; left < right; left, right = left+1, right-1 {
			matched.Positions[left], matched.Positions[right] = matched.Positions[right], matched.Positions[left]
		}
	}
	return matched
}

// FuzzyMatcher adapts FuzzyMatch to the collection engine's Matcher
// signature. Whitespace-separated words in term must each match.
func FuzzyMatcher() collection.Matcher {
	return func(text, term string) bool {
		for _, word := range strings.Fields(term) {
			if !FuzzyMatch(text, []rune(word), nil).Matched {
				return false
			}
		}
		return true
	}
}

// MatcherFor returns the engine matcher for a configured search mode:
// "fuzzy" selects FuzzyMatcher, anything else substring matching.
func MatcherFor(mode string) collection.Matcher {
	if mode == "fuzzy" {
		return FuzzyMatcher()
	}
	return collection.Substring
}
