// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package skyline

import (
	"context"
	"log/slog"
	"net"
	"net/netip"
	"time"

	"github.com/bureau-foundation/skyline/lib/clock"
	"github.com/bureau-foundation/skyline/lib/codec"
)

// DefaultLogInterval is the minimum spacing between two logged send
// failures. Failures inside the window are counted and reported on the
// next logged line.
const DefaultLogInterval = 10 * time.Second

// Resolver looks up the addresses of a host. *net.Resolver satisfies
// it.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// Option configures an Emitter or Publisher. Options are programmatic
// wiring; the endpoint itself is always the two-value Config.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	codec       codec.Codec
	resolver    Resolver
	clock       clock.Clock
	logInterval time.Duration
}

func buildOptions(opts []Option) options {
	built := options{
		logger:      slog.Default(),
		codec:       codec.Msgpack,
		resolver:    net.DefaultResolver,
		clock:       clock.Real(),
		logInterval: DefaultLogInterval,
	}
	for _, opt := range opts {
		opt(&built)
	}
	return built
}

// WithLogger sets the logger for initialization and failure messages.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCodec sets the payload encoding. Defaults to codec.Msgpack,
// which is what Skyline's listener expects.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithResolver replaces net.DefaultResolver for the one-time endpoint
// lookup.
func WithResolver(resolver Resolver) Option {
	return func(o *options) {
		if resolver != nil {
			o.resolver = resolver
		}
	}
}

// WithClock sets the time source used to rate-limit failure logging.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogInterval sets the minimum spacing between logged send
// failures. Zero or negative logs every failure.
func WithLogInterval(interval time.Duration) Option {
	return func(o *options) {
		o.logInterval = interval
	}
}
