// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Galih066/lara-task/lib/backend"
	"github.com/Galih066/lara-task/lib/schema/task"
	"github.com/Galih066/lara-task/lib/tui"
)

// formField is one input of the create form. name is the backend
// field key its errors come back under.
type formField struct {
	name  string
	label string
	input textinput.Model
}

// formModel is the create-task form. Backend validation errors are
// shown under the field they belong to; the form stays open until the
// backend accepts it or the user cancels.
type formModel struct {
	fields     []formField
	focus      int
	errors     backend.FieldErrors
	submitting bool
}

// createdMsg carries the backend's answer to a create request.
type createdMsg struct {
	task task.Task
	err  error
}

func newFormModel() *formModel {
	specs := []struct {
		name, label, placeholder string
		limit                    int
	}{
		{"title", "Title", "What needs doing", 255},
		{"description", "Description", "Markdown allowed", 2000},
		{"start_date", "Start date", "YYYY-MM-DD", 10},
		{"due_date", "Due date", "YYYY-MM-DD", 10},
		{"priority", "Priority", "high, medium, or low", 6},
		{"assignees", "Assignees", "member ids, comma separated", 200},
		{"attachments", "Images", "file paths, comma separated", 500},
	}
	form := &formModel{}
	for _, spec := range specs {
		input := textinput.New()
		input.Placeholder = spec.placeholder
		input.CharLimit = spec.limit
		input.Prompt = ""
		form.fields = append(form.fields, formField{name: spec.name, label: spec.label, input: input})
	}
	form.fields[0].input.Focus()
	return form
}

func (form *formModel) value(name string) string {
	for _, field := range form.fields {
		if field.name == name {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

func (form *formModel) setFocus(index int) {
	count := len(form.fields)
	form.fields[form.focus].input.Blur()
	form.focus = ((index % count) + count) % count
	form.fields[form.focus].input.Focus()
}

// update handles one key. It returns submit=true when the user asked
// to send the form, and cancel=true on Esc.
func (form *formModel) update(message tea.KeyMsg) (cmd tea.Cmd, submit, cancel bool) {
	if form.submitting {
		return nil, false, message.Type == tea.KeyEsc
	}
	switch message.Type {
	case tea.KeyEsc:
		return nil, false, true
	case tea.KeyCtrlS:
		return nil, true, false
	case tea.KeyTab, tea.KeyDown:
		form.setFocus(form.focus + 1)
		return nil, false, false
	case tea.KeyShiftTab, tea.KeyUp:
		form.setFocus(form.focus - 1)
		return nil, false, false
	case tea.KeyEnter:
		if form.focus == len(form.fields)-1 {
			return nil, true, false
		}
		form.setFocus(form.focus + 1)
		return nil, false, false
	}
	field := &form.fields[form.focus]
	field.input, cmd = field.input.Update(message)
	return cmd, false, false
}

// payload builds the backend request from the inputs.
func (form *formModel) payload(initiator string) backend.TaskForm {
	return backend.TaskForm{
		Title:       form.value("title"),
		Description: form.value("description"),
		Priority:    strings.ToLower(form.value("priority")),
		StartDate:   form.value("start_date"),
		DueDate:     form.value("due_date"),
		Assignees:   splitList(form.value("assignees")),
		Initiator:   initiator,
	}
}

// createCmd reads attachments and sends the form. File problems come
// back as field errors like any other validation failure.
func createCmd(source backend.Backend, timeout timeoutFunc, payload backend.TaskForm, paths []string) tea.Cmd {
	return func() tea.Msg {
		attachments, err := readAttachments(paths)
		if err != nil {
			return createdMsg{err: backend.FieldErrors{"attachments": err.Error()}}
		}
		payload.Attachments = attachments

		ctx, cancel := timeout()
		defer cancel()
		created, err := source.CreateTask(ctx, payload)
		return createdMsg{task: created, err: err}
	}
}

type timeoutFunc func() (context.Context, context.CancelFunc)

// readAttachments loads image files named in the form. Size and type
// limits are enforced by the backend.
func readAttachments(paths []string) ([]backend.Attachment, error) {
	var attachments []backend.Attachment
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
		if index := strings.IndexByte(contentType, ';'); index >= 0 {
			contentType = contentType[:index]
		}
		attachments = append(attachments, backend.Attachment{
			Name: filepath.Base(path),
			Type: contentType,
			Data: data,
		})
	}
	return attachments, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (form *formModel) render(theme tui.Theme, width int) string {
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(14)
	focused := label.Foreground(theme.HeaderForeground).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorText).PaddingLeft(14)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("New task"),
		"",
	}
	for index, field := range form.fields {
		field.input.Width = max(width-18, 20)
		style := label
		if index == form.focus {
			style = focused
		}
		lines = append(lines, style.Render(field.label)+field.input.View())
		if message := form.errors.Field(field.name); message != "" {
			lines = append(lines, errorStyle.Render(message))
		}
	}
	if message := form.errors.Field("status"); message != "" {
		lines = append(lines, errorStyle.Render(message))
	}

	help := "Tab next · Shift+Tab previous · Ctrl+S create · Esc cancel"
	if form.submitting {
		help = "creating…"
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.HelpText).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.FocusBorder).
		Padding(1, 2).
		Width(max(width-4, 40)).
		Render(strings.Join(lines, "\n"))
}
