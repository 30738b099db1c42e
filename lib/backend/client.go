// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/Galih066/lara-task/lib/codec"
	"github.com/Galih066/lara-task/lib/schema/task"
)

// dialTimeout covers only the connect phase.
const dialTimeout = 5 * time.Second

// Client is a Backend that talks to a Server over a Unix socket. Each
// call opens a new connection, writes one request, reads one response,
// and closes. Safe for concurrent use.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for socketPath. timeout bounds each call
// after the request is written; zero means readTimeout+writeTimeout.
func NewClient(socketPath string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = readTimeout + writeTimeout
	}
	return &Client{socketPath: socketPath, timeout: timeout}
}

// Tasks fetches every task.
func (c *Client) Tasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.call(ctx, actionTasks, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Members fetches every member.
func (c *Client) Members(ctx context.Context) ([]task.Member, error) {
	var members []task.Member
	if err := c.call(ctx, actionMembers, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// PersistMove stores a board move.
func (c *Client) PersistMove(ctx context.Context, taskID string, status task.Status) error {
	return c.call(ctx, actionPersistMove, map[string]any{"task_id": taskID, "status": status}, nil)
}

// CreateTask submits the create form, attachments included.
func (c *Client) CreateTask(ctx context.Context, form TaskForm) (task.Task, error) {
	var created task.Task
	err := c.call(ctx, actionCreateTask, map[string]any{"form": form}, &created)
	return created, err
}

// UpdateTask submits a partial patch.
func (c *Client) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (task.Task, error) {
	var updated task.Task
	err := c.call(ctx, actionUpdateTask, map[string]any{"task_id": taskID, "patch": patch}, &updated)
	return updated, err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.call(ctx, actionDeleteTask, map[string]any{"task_id": taskID}, nil)
}

// call sends one request. A failure response becomes FieldErrors, an
// error wrapping ErrNotFound, or a *ServiceError; connection and
// decoding failures are returned as plain wrapped errors.
func (c *Client) call(ctx context.Context, action string, fields map[string]any, result any) error {
	request := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		request[key] = value
	}
	request["action"] = action

	reply, err := c.send(ctx, request)
	if err != nil {
		return fmt.Errorf("calling %q on %s: %w", action, c.socketPath, err)
	}

	if !reply.OK {
		switch reply.Code {
		case codeValidation:
			if len(reply.Fields) > 0 {
				return FieldErrors(reply.Fields)
			}
		case codeNotFound:
			return fmt.Errorf("%s: %w", reply.Error, ErrNotFound)
		}
		return &ServiceError{Action: action, Message: reply.Error}
	}

	if result != nil && len(reply.Data) > 0 {
		if err := codec.Unmarshal(reply.Data, result); err != nil {
			return fmt.Errorf("decoding response data for %q: %w", action, err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, request any) (*response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	// Abort a blocked read or write when the caller gives up.
	stop := context.AfterFunc(ctx, func() { conn.SetDeadline(time.Now()) })
	defer stop()

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	conn.SetReadDeadline(time.Now().Add(c.timeout))
	var reply response
	if err := codec.NewDecoder(io.LimitReader(conn, maxResponseSize)).Decode(&reply); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &reply, nil
}

var (
	_ Backend = (*Client)(nil)
	_ Backend = (*Memory)(nil)
)
