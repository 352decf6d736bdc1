// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"net"
	"testing"
)

// UDPListener is a loopback UDP socket whose datagrams are delivered
// on Datagrams. The socket is closed when the test completes.
type UDPListener struct {
	Conn      *net.UDPConn
	Datagrams <-chan []byte
}

// ListenUDP binds 127.0.0.1 on an ephemeral port and starts a reader
// goroutine. The channel is buffered for bufferSize datagrams; when it
// is full, further datagrams are discarded, as a real UDP receiver
// would.
func ListenUDP(t *testing.T, bufferSize int) *UDPListener {
	t.Helper()

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listening on loopback UDP: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	datagrams := make(chan []byte, bufferSize)
	go func() {
		buffer := make([]byte, 65536)
		for {
			n, _, err := conn.ReadFromUDP(buffer)
			if err != nil {
				close(datagrams)
				return
			}
			payload := make([]byte, n)
			copy(payload, buffer[:n])
			select {
			case datagrams <- payload:
			default:
			}
		}
	}()

	return &UDPListener{Conn: conn, Datagrams: datagrams}
}

// Port returns the listener's UDP port.
func (l *UDPListener) Port() int {
	return l.Conn.LocalAddr().(*net.UDPAddr).Port
}

// UnusedUDPPort returns a loopback UDP port that had a socket bound to
// it a moment ago and is now closed, so nothing is listening there.
func UnusedUDPPort(t *testing.T) int {
	t.Helper()

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("binding probe socket: %v", err)
	}
	port := conn.LocalAddr().(*net.UDPAddr).Port
	conn.Close()
	return port
}
