// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package skyline forwards individual data points from a host
// time-series database to a Skyline anomaly-detection listener over
// UDP.
//
// Each data point becomes one datagram. The metric name and tag set
// are flattened by [canonical.Name], paired with the timestamp and
// value, encoded by a [codec.Codec] (msgpack unless configured
// otherwise), and written to the Skyline endpoint with no
// acknowledgement, batching, or retry.
//
// # Lifecycle
//
// [NewEmitter] resolves the endpoint and opens the single outbound
// socket. On failure it logs a [*ConfigurationError] and returns a nil
// *Emitter. Every method on a nil *Emitter is a safe no-op, so a host
// that ignores the error keeps running with forwarding disabled:
//
//	uninitialized --NewEmitter ok--> ready --Close--> closed
//
// There is no transition back to ready. A failed emitter stays inert
// for the life of the process; a closed one counts further sends as
// dropped.
//
// [Publisher] wraps an Emitter with the hooks a host expects from a
// real-time publisher plugin: PublishDataPoint, Shutdown, Version, and
// CollectStats. It also implements prometheus.Collector.
//
// # Failure policy
//
// Nothing on the publish path returns an error or panics into the
// caller. Encoding failures ([*EncodingError]) and socket failures
// ([*TransportError]) are counted and logged, then dropped. A burst of
// failures logs the first one and then at most one line per log
// interval, carrying the number of failures suppressed in between.
//
// # Concurrency
//
// Send and PublishDataPoint may be called from any number of
// goroutines. The endpoint, codec, and socket are fixed at
// construction; *net.UDPConn writes are safe for concurrent use;
// state and counters are atomics. No goroutines are started and no
// data is queued.
package skyline
