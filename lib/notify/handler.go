// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Handler is a slog.Handler that turns log records into notices. The
// TUI owns stderr while it runs, so warnings and errors logged by the
// backend client or the board reach the user through the status bar
// instead.
//
// Handlers derived with WithAttrs/WithGroup post to the same Poster.
type Handler struct {
	level  slog.Level
	poster Poster
	attrs  []slog.Attr
	groups []string
}

// NewHandler creates a handler that posts records at or above level.
func NewHandler(poster Poster, level slog.Level) *Handler {
	return &Handler{level: level, poster: poster}
}

// Enabled reports whether records at level are posted.
func (handler *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle posts the record as "message (key=value, ...)". A "code"
// attribute becomes the notice Code instead of part of the text.
func (handler *Handler) Handle(_ context.Context, record slog.Record) error {
	notice := Notice{Level: record.Level}

	var parts []string
	prefix := strings.Join(handler.groups, ".")
	collect := func(attr slog.Attr) bool {
		if attr.Key == "code" {
			notice.Code = attr.Value.String()
			return true
		}
		key := attr.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		parts = append(parts, fmt.Sprintf("%s=%s", key, attr.Value))
		return true
	}
	for _, attr := range handler.attrs {
		collect(attr)
	}
	record.Attrs(collect)

	notice.Message = record.Message
	if len(parts) > 0 {
		notice.Message += " (" + strings.Join(parts, ", ") + ")"
	}
	handler.poster.Post(notice)
	return nil
}

// WithAttrs returns a handler that adds attrs to every notice.
func (handler *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		level:  handler.level,
		poster: handler.poster,
		attrs:  append(sliceClone(handler.attrs), attrs...),
		groups: sliceClone(handler.groups),
	}
}

// WithGroup returns a handler that prefixes attribute keys with name.
func (handler *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &Handler{
		level:  handler.level,
		poster: handler.poster,
		attrs:  sliceClone(handler.attrs),
		groups: append(sliceClone(handler.groups), name),
	}
}

func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
