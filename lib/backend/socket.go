// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/Galih066/lara-task/lib/codec"
)

// actionFunc processes one request. raw is the full CBOR request,
// including the "action" field. A nil result yields {ok: true}.
type actionFunc func(ctx context.Context, raw []byte) (any, error)

// response is the envelope for every reply. Code and Fields carry the
// structured error kinds so the client can rebuild ErrNotFound and
// FieldErrors.
type response struct {
	OK     bool              `cbor:"ok"`
	Error  string            `cbor:"error,omitempty"`
	Code   string            `cbor:"code,omitempty"`
	Fields map[string]string `cbor:"fields,omitempty"`
	Data   codec.RawMessage  `cbor:"data,omitempty"`
}

// Connection limits. Requests may carry image attachments, so the
// request cap is MaxAttachments full-size files plus headroom.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 10 * time.Second
	maxRequestSize  = MaxAttachments*MaxAttachmentSize + 1<<20
	maxResponseSize = 16 << 20
)

// socketServer serves a CBOR request-response protocol on a Unix
// socket, one request per connection.
type socketServer struct {
	socketPath string
	handlers   map[string]actionFunc
	logger     *slog.Logger

	activeConnections sync.WaitGroup
}

func newSocketServer(socketPath string, logger *slog.Logger) *socketServer {
	return &socketServer{
		socketPath: socketPath,
		handlers:   make(map[string]actionFunc),
		logger:     logger,
	}
}

func (s *socketServer) handle(action string, handler actionFunc) {
	if _, exists := s.handlers[action]; exists {
		panic(fmt.Sprintf("backend: duplicate handler for action %q", action))
	}
	s.handlers[action] = handler
}

// serve accepts connections until ctx is cancelled, then waits for
// in-flight requests. A stale socket file is removed first and the
// socket is removed on return. ready, if non-nil, is closed once the
// listener is up.
func (s *socketServer) serve(ctx context.Context, ready chan<- struct{}) error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(s.socketPath)
	}()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("backend listening", "path", s.socketPath)
	if ready != nil {
		close(ready)
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			s.handleConnection(ctx, conn)
		}()
	}

	s.activeConnections.Wait()
	return nil
}

func (s *socketServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))

	var raw codec.RawMessage
	if err := codec.NewDecoder(io.LimitReader(conn, maxRequestSize)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		s.writeResponse(conn, response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	var header struct {
		Action string `cbor:"action"`
	}
	if err := codec.Unmarshal(raw, &header); err != nil {
		if diagnostic, diagnoseErr := codec.Diagnose(raw); diagnoseErr == nil {
			s.logger.Debug("malformed request", "cbor", diagnostic)
		}
		s.writeResponse(conn, response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if header.Action == "" {
		s.writeResponse(conn, response{Error: "missing required field: action"})
		return
	}

	handler, exists := s.handlers[header.Action]
	if !exists {
		s.writeResponse(conn, response{Error: fmt.Sprintf("unknown action %q", header.Action)})
		return
	}

	result, err := handler(ctx, []byte(raw))
	if err != nil {
		s.logger.Debug("action failed", "action", header.Action, "error", err)
		failure := response{Error: err.Error(), Code: errorCode(err)}
		if fields, ok := AsFieldErrors(err); ok {
			failure.Fields = fields
		}
		s.writeResponse(conn, failure)
		return
	}

	success := response{OK: true}
	if result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			s.writeResponse(conn, response{Error: fmt.Sprintf("internal: marshaling response: %v", err)})
			return
		}
		success.Data = data
	}
	s.writeResponse(conn, success)
}

// writeResponse failures are logged at debug level: the connection is
// closing regardless.
func (s *socketServer) writeResponse(conn net.Conn, reply response) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := codec.NewEncoder(conn).Encode(reply); err != nil {
		s.logger.Debug("failed to write response", "error", err)
	}
}
