// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package skyline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Stats is a snapshot of an emitter's counters.
type Stats struct {
	// Sent counts datagrams the socket accepted.
	Sent uint64

	// BytesSent is the payload bytes of the Sent datagrams.
	BytesSent uint64

	// Dropped counts sends made after Close.
	Dropped uint64

	// EncodeErrors counts data points the codec rejected.
	EncodeErrors uint64

	// TransportErrors counts datagrams the socket rejected, including
	// payloads over MaxDatagramSize.
	TransportErrors uint64
}

// StatsCollector receives counters in the shape host TSDBs use for
// their own self-metrics: a dotted name, a value, and optional tags.
type StatsCollector interface {
	Record(name string, value int64, tags map[string]string)
}

// StatsCollectorFunc adapts a function to StatsCollector.
type StatsCollectorFunc func(name string, value int64, tags map[string]string)

// Record calls f.
func (f StatsCollectorFunc) Record(name string, value int64, tags map[string]string) {
	f(name, value, tags)
}

// record pushes the snapshot and readiness through collector.
func (s Stats) record(collector StatsCollector, ready bool) {
	readyValue := int64(0)
	if ready {
		readyValue = 1
	}
	collector.Record("skyline.ready", readyValue, nil)
	collector.Record("skyline.datagrams.sent", int64(s.Sent), nil)
	collector.Record("skyline.datagrams.bytes", int64(s.BytesSent), nil)
	collector.Record("skyline.datagrams.dropped", int64(s.Dropped), nil)
	collector.Record("skyline.errors", int64(s.EncodeErrors), map[string]string{"type": "encode"})
	collector.Record("skyline.errors", int64(s.TransportErrors), map[string]string{"type": "transport"})
}

var (
	readyDesc = prometheus.NewDesc(
		"skyline_emitter_ready",
		"Whether the Skyline emitter is accepting sends (1) or inert or closed (0).",
		nil, nil,
	)
	sentDesc = prometheus.NewDesc(
		"skyline_datagrams_sent_total",
		"Datagrams accepted by the outbound socket.",
		nil, nil,
	)
	bytesDesc = prometheus.NewDesc(
		"skyline_datagram_bytes_sent_total",
		"Payload bytes of datagrams accepted by the outbound socket.",
		nil, nil,
	)
	droppedDesc = prometheus.NewDesc(
		"skyline_datagrams_dropped_total",
		"Sends discarded because the emitter was closed.",
		nil, nil,
	)
	errorsDesc = prometheus.NewDesc(
		"skyline_errors_total",
		"Data points that failed to encode or send, by failure type.",
		[]string{"type"}, nil,
	)
)

// Describe implements prometheus.Collector.
func (p *Publisher) Describe(ch chan<- *prometheus.Desc) {
	ch <- readyDesc
	ch <- sentDesc
	ch <- bytesDesc
	ch <- droppedDesc
	ch <- errorsDesc
}

// Collect implements prometheus.Collector.
func (p *Publisher) Collect(ch chan<- prometheus.Metric) {
	stats := p.emitter.Stats()

	ready := 0.0
	if p.emitter.State() == StateReady {
		ready = 1
	}
	ch <- prometheus.MustNewConstMetric(readyDesc, prometheus.GaugeValue, ready)
	ch <- prometheus.MustNewConstMetric(sentDesc, prometheus.CounterValue, float64(stats.Sent))
	ch <- prometheus.MustNewConstMetric(bytesDesc, prometheus.CounterValue, float64(stats.BytesSent))
	ch <- prometheus.MustNewConstMetric(droppedDesc, prometheus.CounterValue, float64(stats.Dropped))
	ch <- prometheus.MustNewConstMetric(errorsDesc, prometheus.CounterValue, float64(stats.EncodeErrors), "encode")
	ch <- prometheus.MustNewConstMetric(errorsDesc, prometheus.CounterValue, float64(stats.TransportErrors), "transport")
}
