// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package skyline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"sync"
	"sync/atomic"

	"github.com/bureau-foundation/skyline/lib/codec"
)

// Config is the Skyline endpoint. These two values are the whole
// configuration surface; they are read once and never change.
type Config struct {
	// Host is the Skyline listener's host name or IP address.
	Host string `yaml:"host" json:"host"`

	// Port is the Skyline listener's UDP port.
	Port int `yaml:"port" json:"port"`
}

// Validate checks that Host is set and Port is a valid UDP port.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	return nil
}

// State is an emitter lifecycle state.
type State int32

const (
	// StateUninitialized is reported by a nil *Emitter, which is what
	// NewEmitter returns when initialization fails. Sends are ignored.
	StateUninitialized State = iota

	// StateReady accepts sends.
	StateReady

	// StateClosed is terminal. Sends are counted as dropped.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Emitter owns the outbound UDP socket and the resolved Skyline
// endpoint, and turns (name, timestamp, value) triples into datagrams.
//
// A nil *Emitter is valid: it reports StateUninitialized and ignores
// every call.
type Emitter struct {
	conn     *net.UDPConn
	endpoint netip.AddrPort
	host     string
	port     int
	codec    codec.Codec
	logger   *slog.Logger
	failures *failureLog

	state     atomic.Int32
	closeOnce sync.Once
	closeErr  error

	sent            atomic.Uint64
	bytesSent       atomic.Uint64
	dropped         atomic.Uint64
	encodeErrors    atomic.Uint64
	transportErrors atomic.Uint64
}

// NewEmitter resolves config.Host, opens one UDP socket bound to an
// ephemeral local port, and returns a ready emitter.
//
// On failure the error is logged and returned as a *ConfigurationError
// together with a nil *Emitter. Callers that follow the best-effort
// policy can ignore the error: a nil emitter silently drops every send.
func NewEmitter(ctx context.Context, config Config, opts ...Option) (*Emitter, error) {
	built := buildOptions(opts)
	logger := built.logger.With("host", config.Host, "port", config.Port)

	emitter, err := newEmitter(ctx, config, built)
	if err != nil {
		logger.Error("skyline emitter disabled", "error", err)
		return nil, err
	}

	logger.Info("skyline emitter ready",
		"endpoint", emitter.endpoint.String(),
		"local", emitter.conn.LocalAddr().String(),
		"codec", emitter.codec.Name(),
	)
	return emitter, nil
}

func newEmitter(ctx context.Context, config Config, built options) (*Emitter, error) {
	configError := func(kind ConfigurationErrorKind, err error) error {
		return &ConfigurationError{Kind: kind, Host: config.Host, Port: config.Port, Err: err}
	}

	if err := config.Validate(); err != nil {
		return nil, configError(EndpointInvalid, err)
	}

	address, err := resolve(ctx, built.resolver, config.Host)
	if err != nil {
		return nil, configError(HostUnresolvable, err)
	}

	network := "udp4"
	if address.Is6() {
		network = "udp6"
	}
	conn, err := net.ListenUDP(network, nil)
	if err != nil {
		return nil, configError(SocketUnavailable, err)
	}

	emitter := &Emitter{
		conn:     conn,
		endpoint: netip.AddrPortFrom(address, uint16(config.Port)),
		host:     config.Host,
		port:     config.Port,
		codec:    built.codec,
		logger:   built.logger,
		failures: newFailureLog(built.logger, built.clock, built.logInterval),
	}
	emitter.state.Store(int32(StateReady))
	return emitter, nil
}

// resolve returns the address to send to. IP literals skip the
// resolver. When a name has both IPv4 and IPv6 addresses the first
// IPv4 address wins, so the choice does not depend on resolver
// ordering across restarts.
func resolve(ctx context.Context, resolver Resolver, host string) (netip.Addr, error) {
	if literal, err := netip.ParseAddr(host); err == nil {
		return literal.Unmap(), nil
	}

	addresses, err := resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.Addr{}, err
	}
	if len(addresses) == 0 {
		return netip.Addr{}, fmt.Errorf("no addresses for %q", host)
	}

	for _, candidate := range addresses {
		if candidate.Unmap().Is4() {
			return candidate.Unmap(), nil
		}
	}
	return addresses[0], nil
}

// State returns the current lifecycle state.
func (e *Emitter) State() State {
	if e == nil {
		return StateUninitialized
	}
	return State(e.state.Load())
}

// Endpoint returns the resolved destination. The zero AddrPort for a
// nil emitter.
func (e *Emitter) Endpoint() netip.AddrPort {
	if e == nil {
		return netip.AddrPort{}
	}
	return e.endpoint
}

// LocalAddr returns the address the outbound socket is bound to, or
// nil for a nil emitter.
func (e *Emitter) LocalAddr() net.Addr {
	if e == nil {
		return nil
	}
	return e.conn.LocalAddr()
}

// Send encodes [name, [timestamp, value]] and writes it as one
// datagram. It never returns an error and never retries: failures are
// counted, logged, and dropped.
func (e *Emitter) Send(name string, timestamp int64, value codec.Number) {
	if e == nil {
		return
	}
	if e.State() != StateReady {
		e.dropped.Add(1)
		return
	}

	payload, err := e.codec.Encode(codec.Datapoint{Name: name, Timestamp: timestamp, Value: value})
	if err != nil {
		e.encodeErrors.Add(1)
		e.failures.report(&EncodingError{Name: name, Codec: e.codec.Name(), Err: err}, e.host, e.port)
		return
	}

	if len(payload) > MaxDatagramSize {
		e.transportErrors.Add(1)
		e.failures.report(&TransportError{
			Name:     name,
			Endpoint: e.endpoint,
			Size:     len(payload),
			Err:      ErrDatagramTooLarge,
		}, e.host, e.port)
		return
	}

	if _, err := e.conn.WriteToUDPAddrPort(payload, e.endpoint); err != nil {
		// A send racing Close lands here with net.ErrClosed. That is
		// shutdown, not a transport failure.
		if e.State() == StateClosed {
			e.dropped.Add(1)
			return
		}
		e.transportErrors.Add(1)
		e.failures.report(&TransportError{
			Name:     name,
			Endpoint: e.endpoint,
			Size:     len(payload),
			Err:      err,
		}, e.host, e.port)
		return
	}

	e.sent.Add(1)
	e.bytesSent.Add(uint64(len(payload)))
}

// SendInt sends an integer value.
func (e *Emitter) SendInt(name string, timestamp int64, value int64) {
	e.Send(name, timestamp, codec.Int(value))
}

// SendFloat sends a floating-point value.
func (e *Emitter) SendFloat(name string, timestamp int64, value float64) {
	e.Send(name, timestamp, codec.Float(value))
}

// Close releases the socket and moves the emitter to StateClosed. It is
// idempotent; only the first call can return an error. Safe on a nil
// emitter.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.closeOnce.Do(func() {
		e.state.Store(int32(StateClosed))
		e.closeErr = e.conn.Close()
		stats := e.Stats()
		e.logger.Info("skyline emitter closed",
			"host", e.host,
			"port", e.port,
			"sent", stats.Sent,
			"dropped", stats.Dropped,
			"encode_errors", stats.EncodeErrors,
			"transport_errors", stats.TransportErrors,
		)
	})
	return e.closeErr
}

// Stats returns a snapshot of the emitter's counters. All zero for a
// nil emitter.
func (e *Emitter) Stats() Stats {
	if e == nil {
		return Stats{}
	}
	return Stats{
		Sent:            e.sent.Load(),
		BytesSent:       e.bytesSent.Load(),
		Dropped:         e.dropped.Load(),
		EncodeErrors:    e.encodeErrors.Load(),
		TransportErrors: e.transportErrors.Load(),
	}
}
