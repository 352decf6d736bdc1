// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package opentsdb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/bureau-foundation/skyline/lib/netutil"
	"github.com/bureau-foundation/skyline/lib/skyline"
	"github.com/bureau-foundation/skyline/lib/version"
)

// maxLineLength bounds a single command line. OpenTSDB rejects lines
// longer than 1024 bytes by default; we allow more for wide tag sets.
const maxLineLength = 64 * 1024

// Sink receives parsed data points. *skyline.Publisher implements it.
type Sink interface {
	Publish(point skyline.DataPoint)
}

// Server accepts line-protocol connections and publishes every put to
// a Sink.
type Server struct {
	sink   Sink
	logger *slog.Logger

	activeConnections sync.WaitGroup
}

// NewServer creates a server publishing to sink.
func NewServer(sink Sink, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{sink: sink, logger: logger}
}

// ListenAndServe listens on the TCP address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", address, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then
// closes the listener and every open connection and waits for their
// handlers to return. It returns nil on cancellation.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	defer listener.Close()

	// Unblock Accept when the context is cancelled.
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("put listener ready", "address", listener.Addr().String())

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

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	remote := conn.RemoteAddr().String()
	s.logger.Debug("put connection opened", "remote", remote)

	if err := s.ServeReader(conn, conn); err != nil && !netutil.IsExpectedCloseError(err) {
		if ctx.Err() == nil {
			s.logger.Warn("put connection failed", "remote", remote, "error", err)
		}
	}
	s.logger.Debug("put connection closed", "remote", remote)
}

// ServeReader processes commands from r until EOF or an exit command,
// writing responses to w. It returns nil at EOF and on exit.
func (s *Server) ServeReader(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		command := strings.Fields(line)[0]
		var response string
		switch command {
		case "put":
			point, err := ParsePut(line)
			if err != nil {
				response = "put: " + err.Error()
				break
			}
			s.sink.Publish(point)
		case "version":
			response = "skyline " + version.Info()
		case "exit":
			return nil
		default:
			response = "unknown command: " + command
		}

		if response != "" {
			if _, err := io.WriteString(w, response+"\n"); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
