// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY). Truncation is ANSI-aware
// so styling on both sides of the overlay survives.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		lineIndex := anchorY + index
		if lineIndex < 0 || lineIndex >= len(viewLines) {
			continue
		}
		line := viewLines[lineIndex]
		lineWidth := ansi.StringWidth(line)

		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(line, anchorX, "")
			result.WriteString(prefix)
			// Short lines are padded so the overlay lands at its column.
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				result.WriteString(strings.Repeat(" ", gap))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")
		if suffixStart := anchorX + overlayWidth; suffixStart < lineWidth {
			result.WriteString(ansi.TruncateLeft(line, suffixStart, ""))
		}
		viewLines[lineIndex] = result.String()
	}
	return strings.Join(viewLines, "\n")
}

// PadOverlayLine pads styled content to innerWidth with one column of
// background on each side.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := max(innerWidth-ansi.StringWidth(styledContent), 0)
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}

// Excerpt returns the first maxLines non-blank lines of body, each
// truncated to maxWidth. Board cards use it for description previews.
func Excerpt(body string, maxWidth, maxLines int) []string {
	var result []string
	if maxLines <= 0 || maxWidth <= 0 {
		return result
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if ansi.StringWidth(trimmed) > maxWidth {
			trimmed = ansi.Truncate(trimmed, maxWidth, "…")
		}
		result = append(result, trimmed)
		if len(result) >= maxLines {
			break
		}
	}
	return result
}

// Highlight renders plain text with the runes at positions styled by
// highlight and the rest by base. Positions must be ascending rune
// offsets, as FuzzyMatch returns them.
func Highlight(text string, positions []int, base, highlight lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	var result strings.Builder
	var run strings.Builder
	runHighlighted := false
	next := 0

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runHighlighted {
			result.WriteString(highlight.Render(run.String()))
		} else {
			result.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}

	for offset, character := range []rune(text) {
		matched := next < len(positions) && positions[next] == offset
		if matched {
			next++
		}
		if matched != runHighlighted {
			flush()
			runHighlighted = matched
		}
		run.WriteRune(character)
	}
	flush()
	return result.String()
}
