// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"
)

// fatalRecorder captures Fatalf instead of stopping the test. The
// helpers call panic("unreachable") after Fatalf, so callers recover.
type fatalRecorder struct {
	message string
}

func (r *fatalRecorder) Helper() {}

func (r *fatalRecorder) Fatalf(format string, args ...any) {
	r.message = fmt.Sprintf(format, args...)
	panic(r)
}

func expectFatal(t *testing.T, f func(recorder *fatalRecorder)) string {
	t.Helper()
	recorder := &fatalRecorder{}
	func() {
		defer func() { recover() }()
		f(recorder)
	}()
	if recorder.message == "" {
		t.Fatal("expected Fatalf")
	}
	return recorder.message
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 42
	if got := RequireReceive(t, ch, time.Second, "value"); got != 42 {
		t.Errorf("RequireReceive = %d, want 42", got)
	}

	closed := make(chan int)
	close(closed)
	message := expectFatal(t, func(r *fatalRecorder) {
		RequireReceive(r, closed, time.Second, "closed %s", "channel")
	})
	if message != "channel closed without sending a value: closed channel" {
		t.Errorf("message = %q", message)
	}

	expectFatal(t, func(r *fatalRecorder) {
		RequireReceive(r, make(chan int), time.Millisecond)
	})
}

func TestRequireClosed(t *testing.T) {
	done := make(chan struct{})
	close(done)
	RequireClosed(t, done, time.Second, "done")

	expectFatal(t, func(r *fatalRecorder) {
		RequireClosed(r, make(chan struct{}), time.Millisecond)
	})
}

func TestListenUDP(t *testing.T) {
	listener := ListenUDP(t, 4)

	sender, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: listener.Port()})
	if err != nil {
		t.Fatalf("DialUDP: %v", err)
	}
	defer sender.Close()

	if _, err := sender.Write([]byte("ping")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := RequireReceive(t, listener.Datagrams, 5*time.Second, "datagram"); string(got) != "ping" {
		t.Errorf("datagram = %q, want ping", got)
	}
}

func TestUnusedUDPPort(t *testing.T) {
	if port := UnusedUDPPort(t); port <= 0 || port > 65535 {
		t.Errorf("UnusedUDPPort = %d", port)
	}
}
