// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// wrapBreakpoints are the characters ansi.Wrap may break after besides
// whitespace.
const wrapBreakpoints = " ,.;-+|"

var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func parser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// RenderMarkdown renders a task description as styled terminal text
// wrapped to width. Soft line breaks become spaces so hard-wrapped
// source reflows. Fenced code is highlighted with chroma.
func RenderMarkdown(input string, theme Theme, width int) string {
	return RenderMarkdownTo(io.Discard, input, theme, width)
}

// RenderMarkdownTo renders with a lipgloss renderer bound to output and
// forced to the ANSI256 profile. The output writer is only used for
// terminal queries; the rendered text is returned.
func RenderMarkdownTo(output io.Writer, input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	// The renderer would otherwise re-detect the profile from the
	// environment and drop all color when there is no TTY.
	lipRenderer := lipgloss.NewRenderer(output, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:   source,
		theme:    theme,
		width:    width,
		renderer: lipRenderer,
	}
	_ = ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks the AST directly: inline content accumulates
// in a buffer and is wrapped as a unit when its block closes.
type markdownRenderer struct {
	source   []byte
	theme    Theme
	width    int
	renderer *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	// prefix is prepended to every emitted line (blockquote bars, list
	// indentation); bullet replaces it for the first line of an item.
	prefix      string
	prefixWidth int
	prefixes    []int
	bullet      string

	bold, italic, strike int
	lists                []listLevel

	trailingNewlines int
}

type listLevel struct {
	ordered bool
	next    int
	tight   bool
}

func (renderer *markdownRenderer) style() lipgloss.Style {
	return renderer.renderer.NewStyle()
}

func (renderer *markdownRenderer) contentWidth() int {
	return max(renderer.width-renderer.prefixWidth, 10)
}

func (renderer *markdownRenderer) push(prefix string) {
	renderer.prefix += prefix
	renderer.prefixWidth += ansi.StringWidth(prefix)
	renderer.prefixes = append(renderer.prefixes, len(prefix))
}

func (renderer *markdownRenderer) pop() {
	if len(renderer.prefixes) == 0 {
		return
	}
	size := renderer.prefixes[len(renderer.prefixes)-1]
	renderer.prefixes = renderer.prefixes[:len(renderer.prefixes)-1]
	removed := renderer.prefix[len(renderer.prefix)-size:]
	renderer.prefix = renderer.prefix[:len(renderer.prefix)-size]
	renderer.prefixWidth -= ansi.StringWidth(removed)
}

func (renderer *markdownRenderer) tight() bool {
	return len(renderer.lists) > 0 && renderer.lists[len(renderer.lists)-1].tight
}

func (renderer *markdownRenderer) write(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	newlines := len(s) - len(trimmed)
	if trimmed == "" {
		renderer.trailingNewlines += newlines
	} else {
		renderer.trailingNewlines = newlines
	}
}

func (renderer *markdownRenderer) newline() {
	if renderer.trailingNewlines < 1 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) blankLine() {
	if renderer.output.Len() == 0 {
		return
	}
	for renderer.trailingNewlines < 2 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) linePrefix() string {
	if renderer.bullet != "" {
		bullet := renderer.bullet
		renderer.bullet = ""
		return bullet
	}
	return renderer.prefix
}

func (renderer *markdownRenderer) prefixLines(content string) string {
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		if index == 0 {
			lines[index] = renderer.linePrefix() + line
		} else {
			lines[index] = renderer.prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func (renderer *markdownRenderer) flush() string {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return ""
	}
	return renderer.prefixLines(ansi.Wrap(content, renderer.contentWidth(), wrapBreakpoints))
}

func (renderer *markdownRenderer) styled(content string) string {
	style := renderer.style().Foreground(renderer.theme.NormalText)
	if renderer.bold > 0 {
		style = style.Bold(true)
	}
	if renderer.italic > 0 {
		style = style.Italic(true)
	}
	if renderer.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (renderer *markdownRenderer) faint(content string) string {
	return renderer.style().Foreground(renderer.theme.FaintText).Render(content)
}

// childText collects the inline rendering of node's children without
// disturbing the enclosing buffer.
func (renderer *markdownRenderer) childText(node ast.Node) string {
	saved := renderer.inline.String()
	renderer.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		_ = ast.Walk(child, renderer.walk)
	}
	result := renderer.inline.String()
	renderer.inline.Reset()
	renderer.inline.WriteString(saved)
	return result
}

func (renderer *markdownRenderer) blockLines(lines *text.Segments) string {
	var builder strings.Builder
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(renderer.source))
	}
	return builder.String()
}

func (renderer *markdownRenderer) highlight(code, language string) string {
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err == nil {
			return buffer.String()
		}
	}
	return renderer.faint(code)
}

func (renderer *markdownRenderer) writeBlock(content string) {
	renderer.blankLine()
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		renderer.write(renderer.linePrefix() + line)
		renderer.newline()
	}
	renderer.blankLine()
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			renderer.inline.Reset()
			break
		}
		if flushed := renderer.flush(); flushed != "" {
			renderer.write(flushed)
			renderer.newline()
			if !renderer.tight() {
				renderer.blankLine()
			}
		}

	case *ast.Heading:
		if entering {
			renderer.inline.Reset()
			break
		}
		content := ansi.Strip(renderer.inline.String())
		renderer.inline.Reset()
		if content == "" {
			break
		}
		style := renderer.style().Bold(true).Foreground(renderer.theme.NormalText)
		if node.Level <= 2 {
			style = style.Foreground(renderer.theme.HeaderForeground).Underline(node.Level == 1)
		}
		renderer.blankLine()
		renderer.write(renderer.prefixLines(ansi.Wrap(style.Render(content), renderer.contentWidth(), wrapBreakpoints)))
		renderer.newline()
		renderer.blankLine()

	case *ast.FencedCodeBlock:
		if entering {
			language := string(node.Language(renderer.source))
			renderer.writeBlock(renderer.highlight(renderer.blockLines(node.Lines()), language))
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if entering {
			renderer.writeBlock(renderer.faint(renderer.blockLines(node.Lines())))
		}
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock:
		if entering {
			if stripped := strings.TrimSpace(stripTags(renderer.blockLines(node.Lines()))); stripped != "" {
				renderer.writeBlock(renderer.faint(stripped))
			}
		}
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if entering {
			renderer.push(renderer.style().Foreground(renderer.theme.BorderColor).Render("│") + " ")
		} else {
			renderer.pop()
			renderer.blankLine()
		}

	case *ast.List:
		if entering {
			renderer.lists = append(renderer.lists, listLevel{ordered: node.IsOrdered(), next: node.Start, tight: node.IsTight})
		} else {
			renderer.lists = renderer.lists[:len(renderer.lists)-1]
			if !renderer.tight() {
				renderer.blankLine()
			}
		}

	case *ast.ListItem:
		if entering {
			bullet := "• "
			if level := &renderer.lists[len(renderer.lists)-1]; level.ordered {
				bullet = fmt.Sprintf("%d. ", level.next)
				level.next++
			}
			renderer.bullet = renderer.prefix + bullet
			renderer.push(strings.Repeat(" ", ansi.StringWidth(bullet)))
		} else {
			renderer.pop()
			if renderer.tight() {
				renderer.newline()
			} else {
				renderer.blankLine()
			}
		}

	case *ast.ThematicBreak:
		if entering {
			rule := renderer.style().Foreground(renderer.theme.BorderColor).Render(strings.Repeat("─", renderer.contentWidth()))
			renderer.writeBlock(rule)
		}

	case *ast.Text:
		if entering {
			renderer.inline.WriteString(renderer.styled(string(node.Segment.Value(renderer.source))))
			switch {
			case node.HardLineBreak():
				renderer.inline.WriteString("\n")
			case node.SoftLineBreak():
				renderer.inline.WriteString(" ")
			}
		}

	case *ast.String:
		if entering {
			renderer.inline.WriteString(renderer.styled(string(node.Value)))
		}

	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.Level >= 2 {
			renderer.bold += delta
		} else {
			renderer.italic += delta
		}

	case *ast.CodeSpan:
		if entering {
			renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.StatusReview).Render(ansi.Strip(renderer.childText(node))))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		if entering {
			renderer.inline.WriteString(renderer.childText(node))
			if destination := string(node.Destination); destination != "" {
				renderer.inline.WriteString(" " + renderer.faint("("+destination+")"))
			}
		}
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		if entering {
			renderer.inline.WriteString(renderer.faint(string(node.URL(renderer.source))))
		}

	case *ast.Image:
		if entering {
			renderer.inline.WriteString(renderer.faint("[image: " + ansi.Strip(renderer.childText(node)) + "]"))
		}
		return ast.WalkSkipChildren, nil

	case *ast.RawHTML:
		if entering {
			var raw strings.Builder
			for index := 0; index < node.Segments.Len(); index++ {
				segment := node.Segments.At(index)
				raw.Write(segment.Value(renderer.source))
			}
			if stripped := stripTags(raw.String()); stripped != "" {
				renderer.inline.WriteString(renderer.faint(stripped))
			}
		}

	case *extast.Strikethrough:
		if entering {
			renderer.strike++
		} else {
			renderer.strike--
		}

	case *extast.TaskCheckBox:
		if entering {
			if node.IsChecked {
				renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.StatusDone).Render("[x]") + " ")
			} else {
				renderer.inline.WriteString(renderer.styled("[ ] "))
			}
		}

	case *extast.Table:
		if entering {
			renderer.renderTable(node)
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

// renderTable lays out a GFM table with columns sized to their widest
// cell, shrunk proportionally when the table exceeds the width.
func (renderer *markdownRenderer) renderTable(table *extast.Table) {
	var rows [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, renderer.childText(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}

	const gap = "  "
	columns := len(rows[0])
	widths := make([]int, columns)
	for _, row := range rows {
		for index := 0; index < len(row) && index < columns; index++ {
			widths[index] = max(widths[index], ansi.StringWidth(row[index]))
		}
	}
	total := len(gap) * (columns - 1)
	for _, width := range widths {
		total += width
	}
	if available := renderer.contentWidth(); total > available {
		usable := max(available-len(gap)*(columns-1), columns*3)
		for index := range widths {
			widths[index] = max(widths[index]*usable/total, 3)
		}
	}

	format := func(row []string) string {
		parts := make([]string, columns)
		for index, width := range widths {
			var cell string
			if index < len(row) {
				cell = ansi.Truncate(row[index], width, "…")
			}
			padding := max(width-ansi.StringWidth(cell), 0)
			alignment := extast.AlignNone
			if index < len(table.Alignments) {
				alignment = table.Alignments[index]
			}
			switch alignment {
			case extast.AlignRight:
				cell = strings.Repeat(" ", padding) + cell
			case extast.AlignCenter:
				cell = strings.Repeat(" ", padding/2) + cell + strings.Repeat(" ", padding-padding/2)
			default:
				cell += strings.Repeat(" ", padding)
			}
			parts[index] = cell
		}
		return strings.Join(parts, gap)
	}

	renderer.blankLine()
	header := renderer.style().Bold(true).Foreground(renderer.theme.NormalText)
	renderer.write(renderer.linePrefix() + header.Render(ansi.Strip(format(rows[0]))))
	renderer.newline()
	rules := make([]string, columns)
	for index, width := range widths {
		rules[index] = strings.Repeat("─", width)
	}
	renderer.write(renderer.prefix + renderer.style().Foreground(renderer.theme.BorderColor).Render(strings.Join(rules, gap)))
	renderer.newline()
	for _, row := range rows[1:] {
		renderer.write(renderer.prefix + format(row))
		renderer.newline()
	}
	renderer.blankLine()
}

func stripTags(html string) string {
	var result strings.Builder
	inTag := false
	for _, character := range html {
		switch {
		case character == '<':
			inTag = true
		case character == '>':
			inTag = false
		case !inTag:
			result.WriteRune(character)
		}
	}
	return result.String()
}
