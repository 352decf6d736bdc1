// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package skyline

import (
	"context"

	"github.com/bureau-foundation/skyline/lib/canonical"
	"github.com/bureau-foundation/skyline/lib/codec"
	"github.com/bureau-foundation/skyline/lib/version"
)

// DataPoint is one observation handed over by the host: a metric name,
// a timestamp in whatever unit the host uses (passed through
// verbatim), a value, and the tag set.
type DataPoint struct {
	Metric    string
	Timestamp int64
	Value     codec.Number
	Tags      map[string]string
}

// Publisher is the host-facing side of the forwarder: it flattens each
// data point's name and hands it to an Emitter.
//
// Publisher never fails. If the emitter cannot be initialized, the
// publisher logs the error once and discards every data point; Err
// reports what went wrong.
type Publisher struct {
	emitter *Emitter
	err     error
}

// NewPublisher initializes the emitter for config. The returned
// publisher is always usable.
func NewPublisher(ctx context.Context, config Config, opts ...Option) *Publisher {
	emitter, err := NewEmitter(ctx, config, opts...)
	return &Publisher{emitter: emitter, err: err}
}

// Err returns the initialization error, or nil if the emitter is
// ready (or was ready before Shutdown).
func (p *Publisher) Err() error { return p.err }

// Emitter returns the underlying emitter, nil if initialization
// failed.
func (p *Publisher) Emitter() *Emitter { return p.emitter }

// PublishDataPoint forwards one data point. It returns once the
// datagram has been handed to the OS, or immediately if forwarding is
// disabled.
func (p *Publisher) PublishDataPoint(metric string, timestamp int64, value codec.Number, tags map[string]string) {
	if p.emitter == nil {
		return
	}
	p.emitter.Send(canonical.Name(metric, tags), timestamp, value)
}

// PublishInt forwards an integer data point.
func (p *Publisher) PublishInt(metric string, timestamp int64, value int64, tags map[string]string) {
	p.PublishDataPoint(metric, timestamp, codec.Int(value), tags)
}

// PublishFloat forwards a floating-point data point.
func (p *Publisher) PublishFloat(metric string, timestamp int64, value float64, tags map[string]string) {
	p.PublishDataPoint(metric, timestamp, codec.Float(value), tags)
}

// Publish forwards point.
func (p *Publisher) Publish(point DataPoint) {
	p.PublishDataPoint(point.Metric, point.Timestamp, point.Value, point.Tags)
}

// Shutdown closes the emitter's socket. It is idempotent and returns
// the close error only from the first call.
func (p *Publisher) Shutdown() error {
	return p.emitter.Close()
}

// Version returns the forwarder's release version.
func (p *Publisher) Version() string {
	return version.Short()
}

// CollectStats records the emitter's counters into collector.
func (p *Publisher) CollectStats(collector StatsCollector) {
	p.emitter.Stats().record(collector, p.emitter.State() == StateReady)
}

// Stats returns a snapshot of the emitter's counters.
func (p *Publisher) Stats() Stats {
	return p.emitter.Stats()
}
