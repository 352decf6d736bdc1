// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"errors"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// Reasons returned by DatagramFailure.
const (
	ReasonTooLarge    = "too_large"
	ReasonRefused     = "refused"
	ReasonUnreachable = "unreachable"
	ReasonNoBuffers   = "no_buffers"
	ReasonPermission  = "permission"
	ReasonClosed      = "closed"
	ReasonTimeout     = "timeout"
	ReasonOther       = "other"
)

// DatagramFailure returns a short reason for a failed datagram send.
//
// On an unconnected UDP socket most remote failures are never
// reported; the ones that do surface come from the local stack:
// EMSGSIZE when the payload exceeds the path MTU with DF set or the
// socket limit, ENOBUFS when the send queue is full, EACCES for a
// broadcast destination without SO_BROADCAST, and ECONNREFUSED /
// E*UNREACH when an earlier ICMP error is queued on the socket.
func DatagramFailure(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, net.ErrClosed) {
		return ReasonClosed
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return ReasonTimeout
	}

	var errno unix.Errno
	if !errors.As(err, &errno) {
		return ReasonOther
	}
	switch errno {
	case unix.EMSGSIZE:
		return ReasonTooLarge
	case unix.ECONNREFUSED:
		return ReasonRefused
	case unix.ENETUNREACH, unix.EHOSTUNREACH, unix.EHOSTDOWN, unix.ENETDOWN:
		return ReasonUnreachable
	case unix.ENOBUFS, unix.EAGAIN:
		return ReasonNoBuffers
	case unix.EACCES, unix.EPERM:
		return ReasonPermission
	default:
		return ReasonOther
	}
}
