// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Skyline-relay runs the metric forwarder standalone, without a TSDB
// in front of it. It accepts OpenTSDB put lines over TCP (and
// optionally stdin), flattens each data point's tags into its name,
// and fires one UDP datagram per point at the configured Skyline
// horizon listener.
//
// Data flow:
//
//	put line → opentsdb.Server → skyline.Publisher → UDP datagram → Skyline
//
// Forwarding never blocks or fails the writer. If the Skyline host
// cannot be resolved at startup the relay keeps accepting puts and
// discards them, logging the cause once.
//
// With --metrics-listen, the forwarder's counters are exported in
// Prometheus text format at /metrics.
package main
