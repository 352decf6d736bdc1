// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package skyline

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/skyline/lib/clock"
)

func TestFailureLogAdmit(t *testing.T) {
	fakeClock := clock.Fake(testEpoch)
	log := newFailureLog(slog.New(slog.NewTextHandler(io.Discard, nil)), fakeClock, 10*time.Second)

	steps := []struct {
		advance        time.Duration
		wantAdmitted   bool
		wantSuppressed uint64
	}{
		{0, true, 0},
		{time.Second, false, 0},
		{time.Second, false, 0},
		{8 * time.Second, true, 2},
		{9 * time.Second, false, 0},
		{time.Second, true, 1},
		{time.Hour, true, 0},
	}

	for i, step := range steps {
		fakeClock.Advance(step.advance)
		suppressed, admitted := log.admit()
		if admitted != step.wantAdmitted || suppressed != step.wantSuppressed {
			t.Errorf("step %d: admit = (%d, %v), want (%d, %v)",
				i, suppressed, admitted, step.wantSuppressed, step.wantAdmitted)
		}
	}
}

func TestFailureLogWithoutInterval(t *testing.T) {
	log := newFailureLog(slog.New(slog.NewTextHandler(io.Discard, nil)), clock.Fake(testEpoch), 0)
	for i := 0; i < 3; i++ {
		if _, admitted := log.admit(); !admitted {
			t.Fatalf("call %d not admitted with zero interval", i)
		}
	}
}

func TestFailureReason(t *testing.T) {
	sendError := func(errno unix.Errno) error {
		return &net.OpError{Op: "write", Net: "udp", Err: os.NewSyscallError("sendto", errno)}
	}

	tests := []struct {
		err  error
		want string
	}{
		{&EncodingError{Err: errors.New("x")}, "encoding"},
		{&TransportError{Err: ErrDatagramTooLarge}, "too_large"},
		{&TransportError{Err: sendError(unix.EMSGSIZE)}, "too_large"},
		{&TransportError{Err: sendError(unix.ENETUNREACH)}, "unreachable"},
		{&TransportError{Err: net.ErrClosed}, "closed"},
		{errors.New("other"), "other"},
	}
	for _, test := range tests {
		if got := failureReason(test.err); got != test.want {
			t.Errorf("failureReason(%v) = %q, want %q", test.err, got, test.want)
		}
	}
}
