// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Galih066/lara-task/lib/codec"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// Socket protocol actions.
const (
	actionTasks       = "tasks"
	actionMembers     = "members"
	actionPersistMove = "persist_move"
	actionCreateTask  = "create_task"
	actionUpdateTask  = "update_task"
	actionDeleteTask  = "delete_task"
)

type moveRequest struct {
	TaskID string      `cbor:"task_id"`
	Status task.Status `cbor:"status"`
}

type createRequest struct {
	Form TaskForm `cbor:"form"`
}

type updateRequest struct {
	TaskID string    `cbor:"task_id"`
	Patch  TaskPatch `cbor:"patch"`
}

type deleteRequest struct {
	TaskID string `cbor:"task_id"`
}

// Server exposes a Backend on a Unix socket.
type Server struct {
	socket *socketServer
}

// NewServer wires every Backend method to its socket action.
func NewServer(source Backend, socketPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	socket := newSocketServer(socketPath, logger)

	socket.handle(actionTasks, func(ctx context.Context, _ []byte) (any, error) {
		return source.Tasks(ctx)
	})
	socket.handle(actionMembers, func(ctx context.Context, _ []byte) (any, error) {
		return source.Members(ctx)
	})
	socket.handle(actionPersistMove, func(ctx context.Context, raw []byte) (any, error) {
		var request moveRequest
		if err := decodeRequest(raw, &request); err != nil {
			return nil, err
		}
		return nil, source.PersistMove(ctx, request.TaskID, request.Status)
	})
	socket.handle(actionCreateTask, func(ctx context.Context, raw []byte) (any, error) {
		var request createRequest
		if err := decodeRequest(raw, &request); err != nil {
			return nil, err
		}
		return source.CreateTask(ctx, request.Form)
	})
	socket.handle(actionUpdateTask, func(ctx context.Context, raw []byte) (any, error) {
		var request updateRequest
		if err := decodeRequest(raw, &request); err != nil {
			return nil, err
		}
		return source.UpdateTask(ctx, request.TaskID, request.Patch)
	})
	socket.handle(actionDeleteTask, func(ctx context.Context, raw []byte) (any, error) {
		var request deleteRequest
		if err := decodeRequest(raw, &request); err != nil {
			return nil, err
		}
		return nil, source.DeleteTask(ctx, request.TaskID)
	})

	return &Server{socket: socket}
}

// Serve blocks until ctx is cancelled.
func (server *Server) Serve(ctx context.Context) error {
	return server.socket.serve(ctx, nil)
}

// ServeReady is Serve, closing ready once the socket accepts
// connections.
func (server *Server) ServeReady(ctx context.Context, ready chan<- struct{}) error {
	return server.socket.serve(ctx, ready)
}

func decodeRequest(raw []byte, target any) error {
	if err := codec.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
