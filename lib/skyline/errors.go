// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package skyline

import (
	"errors"
	"fmt"
	"net/netip"
)

// MaxDatagramSize is the largest payload a UDP datagram can carry over
// IPv4 (65535 minus the 8-byte UDP and 20-byte IP headers). Larger
// payloads are rejected before reaching the socket.
const MaxDatagramSize = 65507

// ErrDatagramTooLarge is wrapped by the TransportError reported for a
// payload longer than MaxDatagramSize.
var ErrDatagramTooLarge = errors.New("payload exceeds maximum datagram size")

// ConfigurationErrorKind identifies which initialization step failed.
type ConfigurationErrorKind int

const (
	// EndpointInvalid means the configured host is empty or the port is
	// outside 1..65535.
	EndpointInvalid ConfigurationErrorKind = iota + 1

	// HostUnresolvable means the host name did not resolve to any
	// address.
	HostUnresolvable

	// SocketUnavailable means the outbound UDP socket could not be
	// opened.
	SocketUnavailable
)

func (k ConfigurationErrorKind) String() string {
	switch k {
	case EndpointInvalid:
		return "endpoint invalid"
	case HostUnresolvable:
		return "host unresolvable"
	case SocketUnavailable:
		return "socket unavailable"
	default:
		return fmt.Sprintf("ConfigurationErrorKind(%d)", int(k))
	}
}

// ConfigurationError is returned by NewEmitter when the endpoint cannot
// be set up. The emitter is inert for the rest of the process.
type ConfigurationError struct {
	Kind ConfigurationErrorKind
	Host string
	Port int
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("skyline %s:%d: %s: %v", e.Host, e.Port, e.Kind, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// EncodingError reports a data point the codec could not serialize.
type EncodingError struct {
	Name  string
	Codec string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %s datagram for %q: %v", e.Codec, e.Name, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// TransportError reports a datagram the socket did not accept.
type TransportError struct {
	Name     string
	Endpoint netip.AddrPort
	Size     int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sending %d-byte datagram for %q to %s: %v", e.Size, e.Name, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
